package leaderboard

import "context"

// Repository exposes leaderboard read operations.
type Repository interface {
	ListByTournament(ctx context.Context, tournamentID string) ([]Player, error)
	GetByName(ctx context.Context, tournamentID, name string) (Player, bool, error)
}
