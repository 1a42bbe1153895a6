package game

import "context"

// Repository exposes game read and retry-bookkeeping operations.
// Outcome commits go through the outcome repository, not here.
type Repository interface {
	ListPendingByTournament(ctx context.Context, tournamentID string) ([]Game, error)
	GetByID(ctx context.Context, tournamentID, gameID string) (Game, bool, error)
	IncrementTimesChecked(ctx context.Context, tournamentID, gameID string) error
	Delete(ctx context.Context, tournamentID, gameID string) error
}
