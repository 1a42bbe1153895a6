package usecase

import (
	"context"

	"github.com/generals-arena/tournament-api/internal/domain/game"
	"github.com/generals-arena/tournament-api/internal/domain/leaderboard"
	"github.com/generals-arena/tournament-api/internal/domain/replay"
)

// ReplayFeed is the game-server history collaborator. Both calls are bounded
// by the implementation's own timeout; an unavailable feed surfaces as an
// error that the matcher degrades to "no candidates this tick".
type ReplayFeed interface {
	GetReplaysForUsername(ctx context.Context, name string, offset, count int, server replay.Server) ([]replay.Replay, error)
	GetReplayStats(ctx context.Context, replayID string, server replay.Server) (replay.Stats, error)
}

// OutcomeCommit carries every write of a single game resolution. The whole
// commit lands atomically or not at all: claiming the replay without
// crediting points is a correctness violation.
type OutcomeCommit struct {
	TournamentID string
	GameID       string
	ReplayID     string
	Status       string
	Resolved     game.ResolvedReplay

	// Leaderboard deltas, empty for a TOO_LATE resolution. Points are
	// atomic increments, streaks are absolute sets, records are appends.
	Records      []leaderboard.MatchRecord
	PointsByName map[string]int
	StreakByName map[string]int
}

// OutcomeRepository applies a resolution commit. The commit is conditioned
// on the game not already carrying a replay id; applied=false means a
// concurrent resolution won the race and this outcome must be discarded.
type OutcomeRepository interface {
	CommitOutcome(ctx context.Context, commit OutcomeCommit) (applied bool, err error)
}
