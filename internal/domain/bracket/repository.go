package bracket

import "context"

// Repository exposes the current bracket snapshot of a tournament. The
// returned snapshot has its feeder edges already resolved.
type Repository interface {
	GetByTournament(ctx context.Context, tournamentID string) (Bracket, bool, error)
}
