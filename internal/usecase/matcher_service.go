package usecase

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"

	"github.com/generals-arena/tournament-api/internal/domain/game"
	"github.com/generals-arena/tournament-api/internal/domain/leaderboard"
	"github.com/generals-arena/tournament-api/internal/domain/replay"
	"github.com/generals-arena/tournament-api/internal/domain/tournament"
	"github.com/generals-arena/tournament-api/internal/platform/logging"
)

const (
	defaultMaxChecks  = 120
	defaultFetchCount = 10
	streakBonusFloor  = 2
)

type OutcomeKind int

const (
	// OutcomeStillPending means no candidate replay reached a strict
	// majority; the caller bumps TimesChecked and retries next tick.
	OutcomeStillPending OutcomeKind = iota
	// OutcomeResolved means the game's replay was identified and committed.
	OutcomeResolved
	// OutcomeAbandoned means the retry ceiling was reached; the caller
	// must delete the game record.
	OutcomeAbandoned
	// OutcomeAlreadyResolved covers both a game that already carried a
	// replay id and a commit race lost to a concurrent resolution.
	OutcomeAlreadyResolved
)

type Outcome struct {
	Kind         OutcomeKind
	ReplayID     string
	TooLate      bool
	SupportCount int
}

type MatcherConfig struct {
	// MaxChecks bounds retries for games that never produce a matching
	// replay, e.g. players who disconnect without finishing.
	MaxChecks int
	// FetchCount is how many recent replays to pull per player per tick.
	FetchCount int
}

// MatcherService reconciles the eventually-consistent replay history feed
// against a pending bracket game to determine its outcome.
type MatcherService struct {
	tournamentRepo tournament.Repository
	playerRepo     leaderboard.Repository
	outcomeRepo    OutcomeRepository
	feed           ReplayFeed
	cfg            MatcherConfig
	logger         *logging.Logger
}

func NewMatcherService(
	tournamentRepo tournament.Repository,
	playerRepo leaderboard.Repository,
	outcomeRepo OutcomeRepository,
	feed ReplayFeed,
	cfg MatcherConfig,
	logger *logging.Logger,
) *MatcherService {
	if cfg.MaxChecks <= 0 {
		cfg.MaxChecks = defaultMaxChecks
	}
	if cfg.FetchCount <= 0 {
		cfg.FetchCount = defaultFetchCount
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &MatcherService{
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		outcomeRepo:    outcomeRepo,
		feed:           feed,
		cfg:            cfg,
		logger:         logger,
	}
}

// Resolve runs one matching attempt for g. It is idempotent and safe under
// concurrent re-invocation: the commit is conditioned on the game not already
// carrying a replay id, and a lost race is reported as already resolved.
func (s *MatcherService) Resolve(ctx context.Context, g game.Game) (Outcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatcherService.Resolve")
	defer span.End()

	if len(g.Players) == 0 {
		return Outcome{}, fmt.Errorf("%w: game has no players", ErrInvalidInput)
	}
	if g.TimesChecked >= s.cfg.MaxChecks {
		return Outcome{Kind: OutcomeAbandoned}, nil
	}
	if g.IsResolved() {
		return Outcome{Kind: OutcomeAlreadyResolved, ReplayID: g.ReplayID}, nil
	}

	t, exists, err := s.tournamentRepo.GetByID(ctx, g.TournamentID)
	if err != nil {
		return Outcome{}, fmt.Errorf("get tournament for game: %w", err)
	}
	if !exists {
		return Outcome{}, fmt.Errorf("%w: tournament=%s", ErrNotFound, g.TournamentID)
	}

	histories, failedFetches := s.fetchHistories(ctx, g, t)
	if failedFetches == len(g.Players) {
		s.logger.WarnContext(ctx, "all replay history fetches failed, retrying next tick",
			"tournament_id", t.ID,
			"game_id", g.ID,
		)
		return Outcome{Kind: OutcomeStillPending}, nil
	}

	best, support := prevalentReplay(histories, g, t)
	if support*2 <= len(g.Players) {
		return Outcome{Kind: OutcomeStillPending, SupportCount: support}, nil
	}

	stats, err := s.feed.GetReplayStats(ctx, best.ID, t.Server)
	if err != nil {
		s.logger.WarnContext(ctx, "replay stats fetch failed, retrying next tick",
			"tournament_id", t.ID,
			"game_id", g.ID,
			"replay_id", best.ID,
			"error", err,
		)
		return Outcome{Kind: OutcomeStillPending, SupportCount: support}, nil
	}

	finished := stats.FinishedAt(best.Started)
	tooLate := finished > t.EndTime

	commit, err := s.buildCommit(ctx, t, g, best, stats, tooLate)
	if err != nil {
		return Outcome{}, err
	}

	applied, err := s.outcomeRepo.CommitOutcome(ctx, commit)
	if err != nil {
		return Outcome{}, fmt.Errorf("commit game outcome: %w", err)
	}
	if !applied {
		// A concurrent attempt resolved the game first; this outcome
		// is discarded, not retried.
		return Outcome{Kind: OutcomeAlreadyResolved, ReplayID: best.ID}, nil
	}

	s.logger.InfoContext(ctx, "game resolved",
		"tournament_id", t.ID,
		"game_id", g.ID,
		"replay_id", best.ID,
		"support", support,
		"players", len(g.Players),
		"too_late", tooLate,
	)

	return Outcome{
		Kind:         OutcomeResolved,
		ReplayID:     best.ID,
		TooLate:      tooLate,
		SupportCount: support,
	}, nil
}

// fetchHistories pulls every player's recent replays concurrently. A failed
// fetch contributes an empty history and is counted so the caller can tell a
// feed blackout from a quiet feed.
func (s *MatcherService) fetchHistories(ctx context.Context, g game.Game, t tournament.Tournament) ([][]replay.Replay, int) {
	var failed atomic.Int32

	p := pool.NewWithResults[[]replay.Replay]()
	for _, name := range g.Players {
		name := name
		p.Go(func() []replay.Replay {
			items, err := s.feed.GetReplaysForUsername(ctx, name, 0, s.cfg.FetchCount, t.Server)
			if err != nil {
				failed.Add(1)
				s.logger.WarnContext(ctx, "replay history fetch failed",
					"tournament_id", t.ID,
					"game_id", g.ID,
					"player", name,
					"error", err,
				)
				return nil
			}
			return items
		})
	}

	return p.Wait(), int(failed.Load())
}

// prevalentReplay filters each player's history to plausible candidates and
// returns the replay shared by the most players. Ties keep whichever replay
// was encountered first; the grouping order is insertion order, so the
// tie-break is deterministic.
func prevalentReplay(histories [][]replay.Replay, g game.Game, t tournament.Tournament) (replay.Replay, int) {
	counts := make(map[string]int)
	firstSeen := make(map[string]replay.Replay)
	order := make([]string, 0)

	for _, history := range histories {
		seen := make(map[string]struct{}, len(history))
		for _, item := range history {
			if t.HasClaimedReplay(item.ID) {
				continue
			}
			if item.Started <= g.Started {
				continue
			}
			if len(item.Ranking) > len(g.Players) {
				continue
			}
			// A player's history should not repeat a replay id, but
			// the support count must stay per distinct player.
			if _, dup := seen[item.ID]; dup {
				continue
			}
			seen[item.ID] = struct{}{}

			if _, ok := firstSeen[item.ID]; !ok {
				firstSeen[item.ID] = item
				order = append(order, item.ID)
			}
			counts[item.ID]++
		}
	}

	best := replay.Replay{}
	bestCount := 0
	for _, id := range order {
		if counts[id] > bestCount {
			best = firstSeen[id]
			bestCount = counts[id]
		}
	}
	return best, bestCount
}

func (s *MatcherService) buildCommit(
	ctx context.Context,
	t tournament.Tournament,
	g game.Game,
	best replay.Replay,
	stats replay.Stats,
	tooLate bool,
) (OutcomeCommit, error) {
	commit := OutcomeCommit{
		TournamentID: t.ID,
		GameID:       g.ID,
		ReplayID:     best.ID,
		Status:       game.StatusFinished,
		Resolved: game.ResolvedReplay{
			Scores:  stats.Scores,
			Summary: stats.Summary,
			Turns:   stats.Turns,
		},
	}
	if tooLate {
		// The match is recorded but does not count competitively:
		// the replay is still claimed, the leaderboard stays untouched.
		commit.Status = game.StatusTooLate
		return commit, nil
	}
	if len(stats.Scores) == 0 {
		return commit, nil
	}

	winner := stats.Scores[0].Name
	prior, registered, err := s.playerRepo.GetByName(ctx, t.ID, winner)
	if err != nil {
		return OutcomeCommit{}, fmt.Errorf("get winner leaderboard entry: %w", err)
	}
	streakBonus := registered && prior.CurrentStreak >= streakBonusFloor

	commit.PointsByName = make(map[string]int, len(stats.Scores))
	commit.StreakByName = make(map[string]int, len(stats.Scores))

	for _, score := range stats.Scores {
		_, ok, err := s.playerRepo.GetByName(ctx, t.ID, score.Name)
		if err != nil {
			return OutcomeCommit{}, fmt.Errorf("get leaderboard entry for %s: %w", score.Name, err)
		}
		if !ok {
			continue
		}

		award := score.Points
		onStreak := false
		if score.Rank == 1 && score.Name == winner && streakBonus {
			award *= 2
			onStreak = true
		}

		commit.Records = append(commit.Records, leaderboard.MatchRecord{
			ReplayID:   best.ID,
			Name:       score.Name,
			Points:     award,
			Rank:       score.Rank,
			LastTurn:   score.LastTurn,
			FinishTime: replay.PlayerFinishedAt(best.Started, score.LastTurn),
			Streak:     onStreak,
		})
		commit.PointsByName[score.Name] = award
		if score.Rank == 1 && score.Name == winner {
			commit.StreakByName[score.Name] = prior.CurrentStreak + 1
		} else {
			commit.StreakByName[score.Name] = 0
		}
	}

	return commit, nil
}
