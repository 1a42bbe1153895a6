package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/generals-arena/tournament-api/internal/domain/tournament"
)

type TournamentRepository struct {
	db *sqlx.DB
}

func NewTournamentRepository(db *sqlx.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

func (r *TournamentRepository) List(ctx context.Context) ([]tournament.Tournament, error) {
	const query = `
SELECT id, name, server, start_time, end_time, replays, player_count
FROM tournaments
ORDER BY start_time, id`

	var rows []tournamentTableModel
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("select tournaments: %w", err)
	}

	out := make([]tournament.Tournament, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	const query = `
SELECT id, name, server, start_time, end_time, replays, player_count
FROM tournaments
WHERE id = $1`

	var row tournamentTableModel
	if err := r.db.GetContext(ctx, &row, query, tournamentID); err != nil {
		if isNotFound(err) {
			return tournament.Tournament{}, false, nil
		}
		return tournament.Tournament{}, false, fmt.Errorf("get tournament: %w", err)
	}
	return row.toDomain(), true, nil
}
