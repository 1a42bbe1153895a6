package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/generals-arena/tournament-api/internal/domain/leaderboard"
)

type LeaderboardRepository struct {
	db *sqlx.DB
}

func NewLeaderboardRepository(db *sqlx.DB) *LeaderboardRepository {
	return &LeaderboardRepository{db: db}
}

func (r *LeaderboardRepository) ListByTournament(ctx context.Context, tournamentID string) ([]leaderboard.Player, error) {
	const playersQuery = `
SELECT tournament_id, name, points, current_streak
FROM tournament_players
WHERE tournament_id = $1
ORDER BY points DESC, name`

	var playerRows []playerTableModel
	if err := r.db.SelectContext(ctx, &playerRows, playersQuery, tournamentID); err != nil {
		return nil, fmt.Errorf("select tournament players: %w", err)
	}

	const recordsQuery = `
SELECT tournament_id, replay_id, name, points, rank, last_turn, finish_time, streak
FROM match_records
WHERE tournament_id = $1
ORDER BY id`

	var recordRows []matchRecordTableModel
	if err := r.db.SelectContext(ctx, &recordRows, recordsQuery, tournamentID); err != nil {
		return nil, fmt.Errorf("select match records: %w", err)
	}

	recordsByName := make(map[string][]leaderboard.MatchRecord, len(playerRows))
	for _, row := range recordRows {
		recordsByName[row.Name] = append(recordsByName[row.Name], row.toDomain())
	}

	out := make([]leaderboard.Player, 0, len(playerRows))
	for _, row := range playerRows {
		out = append(out, leaderboard.Player{
			Name:          row.Name,
			TournamentID:  row.TournamentID,
			Points:        row.Points,
			CurrentStreak: row.CurrentStreak,
			Record:        recordsByName[row.Name],
		})
	}
	return out, nil
}

func (r *LeaderboardRepository) GetByName(ctx context.Context, tournamentID, name string) (leaderboard.Player, bool, error) {
	const playerQuery = `
SELECT tournament_id, name, points, current_streak
FROM tournament_players
WHERE tournament_id = $1
  AND name = $2`

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, playerQuery, tournamentID, name); err != nil {
		if isNotFound(err) {
			return leaderboard.Player{}, false, nil
		}
		return leaderboard.Player{}, false, fmt.Errorf("get tournament player: %w", err)
	}

	const recordsQuery = `
SELECT tournament_id, replay_id, name, points, rank, last_turn, finish_time, streak
FROM match_records
WHERE tournament_id = $1
  AND name = $2
ORDER BY id`

	var recordRows []matchRecordTableModel
	if err := r.db.SelectContext(ctx, &recordRows, recordsQuery, tournamentID, name); err != nil {
		return leaderboard.Player{}, false, fmt.Errorf("select player match records: %w", err)
	}

	records := make([]leaderboard.MatchRecord, 0, len(recordRows))
	for _, record := range recordRows {
		records = append(records, record.toDomain())
	}

	return leaderboard.Player{
		Name:          row.Name,
		TournamentID:  row.TournamentID,
		Points:        row.Points,
		CurrentStreak: row.CurrentStreak,
		Record:        records,
	}, true, nil
}
