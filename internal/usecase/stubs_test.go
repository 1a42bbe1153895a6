package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/generals-arena/tournament-api/internal/domain/game"
	"github.com/generals-arena/tournament-api/internal/domain/leaderboard"
	"github.com/generals-arena/tournament-api/internal/domain/replay"
	"github.com/generals-arena/tournament-api/internal/domain/tournament"
)

type stubTournamentRepo struct {
	items map[string]tournament.Tournament
}

func (r *stubTournamentRepo) List(_ context.Context) ([]tournament.Tournament, error) {
	out := make([]tournament.Tournament, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, item)
	}
	return out, nil
}

func (r *stubTournamentRepo) GetByID(_ context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	item, ok := r.items[tournamentID]
	return item, ok, nil
}

type stubPlayerRepo struct {
	players map[string]leaderboard.Player
}

func (r *stubPlayerRepo) ListByTournament(_ context.Context, _ string) ([]leaderboard.Player, error) {
	out := make([]leaderboard.Player, 0, len(r.players))
	for _, item := range r.players {
		out = append(out, item)
	}
	return out, nil
}

func (r *stubPlayerRepo) GetByName(_ context.Context, _ string, name string) (leaderboard.Player, bool, error) {
	item, ok := r.players[name]
	return item, ok, nil
}

type stubOutcomeRepo struct {
	mu      sync.Mutex
	reject  bool
	commits []OutcomeCommit
}

func (r *stubOutcomeRepo) CommitOutcome(_ context.Context, commit OutcomeCommit) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.reject {
		return false, nil
	}
	r.commits = append(r.commits, commit)
	return true, nil
}

func (r *stubOutcomeRepo) lastCommit() (OutcomeCommit, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.commits) == 0 {
		return OutcomeCommit{}, false
	}
	return r.commits[len(r.commits)-1], true
}

type stubFeed struct {
	histories map[string][]replay.Replay
	stats     map[string]replay.Stats
	failFor   map[string]bool
}

func (f *stubFeed) GetReplaysForUsername(_ context.Context, name string, _, _ int, _ replay.Server) ([]replay.Replay, error) {
	if f.failFor[name] {
		return nil, fmt.Errorf("feed unavailable for %s", name)
	}
	return f.histories[name], nil
}

func (f *stubFeed) GetReplayStats(_ context.Context, replayID string, _ replay.Server) (replay.Stats, error) {
	stats, ok := f.stats[replayID]
	if !ok {
		return replay.Stats{}, fmt.Errorf("no stats for replay %s", replayID)
	}
	return stats, nil
}

type stubGameRepo struct {
	mu          sync.Mutex
	games       map[string]game.Game
	incremented []string
	deleted     []string
}

func (r *stubGameRepo) ListPendingByTournament(_ context.Context, tournamentID string) ([]game.Game, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]game.Game, 0, len(r.games))
	for _, item := range r.games {
		if item.TournamentID == tournamentID && !item.IsResolved() {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *stubGameRepo) GetByID(_ context.Context, _, gameID string) (game.Game, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.games[gameID]
	return item, ok, nil
}

func (r *stubGameRepo) IncrementTimesChecked(_ context.Context, _, gameID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item := r.games[gameID]
	item.TimesChecked++
	r.games[gameID] = item
	r.incremented = append(r.incremented, gameID)
	return nil
}

func (r *stubGameRepo) Delete(_ context.Context, _, gameID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.games, gameID)
	r.deleted = append(r.deleted, gameID)
	return nil
}
