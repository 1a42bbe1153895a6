package postgres

import (
	"context"
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/generals-arena/tournament-api/internal/usecase"
)

// OutcomeRepository applies a resolution commit in one transaction. The game
// update is conditioned on replay_id still being NULL; zero affected rows
// means a concurrent resolution already claimed the game, and the whole
// transaction rolls back.
type OutcomeRepository struct {
	db *sqlx.DB
}

func NewOutcomeRepository(db *sqlx.DB) *OutcomeRepository {
	return &OutcomeRepository{db: db}
}

func (r *OutcomeRepository) CommitOutcome(ctx context.Context, commit usecase.OutcomeCommit) (bool, error) {
	resolvedRaw, err := sonic.Marshal(commit.Resolved)
	if err != nil {
		return false, fmt.Errorf("encode resolved replay: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin outcome tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const claimGameQuery = `
UPDATE games
SET replay_id = $1, status = $2, resolved = $3
WHERE tournament_id = $4
  AND id = $5
  AND replay_id IS NULL`

	result, err := tx.ExecContext(ctx, claimGameQuery,
		nullString(commit.ReplayID), commit.Status, resolvedRaw,
		commit.TournamentID, commit.GameID)
	if err != nil {
		return false, fmt.Errorf("claim game: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("claim game rows affected: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	// Idempotent array union: a replay id is counted at most once per
	// tournament no matter how many commits carry it.
	const claimReplayQuery = `
UPDATE tournaments
SET replays = array_append(replays, $1)
WHERE id = $2
  AND NOT ($1 = ANY (replays))`

	if _, err := tx.ExecContext(ctx, claimReplayQuery, commit.ReplayID, commit.TournamentID); err != nil {
		return false, fmt.Errorf("claim replay on tournament: %w", err)
	}

	const addPointsQuery = `
UPDATE tournament_players
SET points = points + $1
WHERE tournament_id = $2
  AND name = $3`

	for name, points := range commit.PointsByName {
		if _, err := tx.ExecContext(ctx, addPointsQuery, points, commit.TournamentID, name); err != nil {
			return false, fmt.Errorf("add points for %s: %w", name, err)
		}
	}

	const setStreakQuery = `
UPDATE tournament_players
SET current_streak = $1
WHERE tournament_id = $2
  AND name = $3`

	for name, streak := range commit.StreakByName {
		if _, err := tx.ExecContext(ctx, setStreakQuery, streak, commit.TournamentID, name); err != nil {
			return false, fmt.Errorf("set streak for %s: %w", name, err)
		}
	}

	const insertRecordQuery = `
INSERT INTO match_records (tournament_id, replay_id, name, points, rank, last_turn, finish_time, streak)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	for _, record := range commit.Records {
		if _, err := tx.ExecContext(ctx, insertRecordQuery,
			commit.TournamentID, record.ReplayID, record.Name,
			record.Points, record.Rank, record.LastTurn,
			record.FinishTime, record.Streak); err != nil {
			return false, fmt.Errorf("insert match record for %s: %w", record.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit outcome tx: %w", err)
	}
	return true, nil
}
