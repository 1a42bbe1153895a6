package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/generals-arena/tournament-api/internal/domain/leaderboard"
	"github.com/generals-arena/tournament-api/internal/domain/tournament"
	"github.com/generals-arena/tournament-api/internal/platform/cache"
)

// TournamentService is the read surface behind the HTTP API.
type TournamentService struct {
	tournamentRepo tournament.Repository
	playerRepo     leaderboard.Repository
	cacheStore     *cache.Store
}

func NewTournamentService(
	tournamentRepo tournament.Repository,
	playerRepo leaderboard.Repository,
	cacheStore *cache.Store,
) *TournamentService {
	return &TournamentService{
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		cacheStore:     cacheStore,
	}
}

func (s *TournamentService) List(ctx context.Context) ([]tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.List")
	defer span.End()

	items, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tournaments: %w", err)
	}
	return items, nil
}

func (s *TournamentService) GetByID(ctx context.Context, tournamentID string) (tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.GetByID")
	defer span.End()

	tournamentID = strings.TrimSpace(tournamentID)
	if tournamentID == "" {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament id is required", ErrInvalidInput)
	}

	item, exists, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return tournament.Tournament{}, fmt.Errorf("get tournament: %w", err)
	}
	if !exists {
		return tournament.Tournament{}, fmt.Errorf("%w: tournament=%s", ErrNotFound, tournamentID)
	}
	return item, nil
}

// Leaderboard returns the tournament's players with their running scores.
// Reads are cached briefly; the resolution driver drops the tournament's
// cached view whenever a game resolves, so scores never wait out the TTL.
func (s *TournamentService) Leaderboard(ctx context.Context, tournamentID string) ([]leaderboard.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Leaderboard")
	defer span.End()

	if _, err := s.GetByID(ctx, tournamentID); err != nil {
		return nil, err
	}

	load := func(ctx context.Context) (any, error) {
		items, err := s.playerRepo.ListByTournament(ctx, tournamentID)
		if err != nil {
			return nil, fmt.Errorf("list leaderboard players: %w", err)
		}
		return items, nil
	}

	if s.cacheStore == nil {
		out, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return out.([]leaderboard.Player), nil
	}

	out, err := s.cacheStore.GetOrLoad(ctx, "leaderboard:"+tournamentID, load)
	if err != nil {
		return nil, err
	}
	return out.([]leaderboard.Player), nil
}
