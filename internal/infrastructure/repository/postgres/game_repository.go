package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/generals-arena/tournament-api/internal/domain/game"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) ListPendingByTournament(ctx context.Context, tournamentID string) ([]game.Game, error) {
	const query = `
SELECT id, tournament_id, players, started, times_checked, replay_id, status, resolved
FROM games
WHERE tournament_id = $1
  AND replay_id IS NULL
ORDER BY id`

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, tournamentID); err != nil {
		return nil, fmt.Errorf("select pending games: %w", err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		item, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *GameRepository) GetByID(ctx context.Context, tournamentID, gameID string) (game.Game, bool, error) {
	const query = `
SELECT id, tournament_id, players, started, times_checked, replay_id, status, resolved
FROM games
WHERE tournament_id = $1
  AND id = $2`

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, tournamentID, gameID); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("get game: %w", err)
	}

	item, err := row.toDomain()
	if err != nil {
		return game.Game{}, false, err
	}
	return item, true, nil
}

func (r *GameRepository) IncrementTimesChecked(ctx context.Context, tournamentID, gameID string) error {
	const query = `
UPDATE games
SET times_checked = times_checked + 1
WHERE tournament_id = $1
  AND id = $2`

	if _, err := r.db.ExecContext(ctx, query, tournamentID, gameID); err != nil {
		return fmt.Errorf("increment times checked: %w", err)
	}
	return nil
}

func (r *GameRepository) Delete(ctx context.Context, tournamentID, gameID string) error {
	const query = `
DELETE FROM games
WHERE tournament_id = $1
  AND id = $2`

	if _, err := r.db.ExecContext(ctx, query, tournamentID, gameID); err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	return nil
}
