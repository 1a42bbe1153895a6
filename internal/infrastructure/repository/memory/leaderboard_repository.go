package memory

import (
	"context"
	"sort"

	"github.com/generals-arena/tournament-api/internal/domain/leaderboard"
)

type LeaderboardRepository struct {
	store *Store
}

func NewLeaderboardRepository(store *Store) *LeaderboardRepository {
	return &LeaderboardRepository{store: store}
}

// ListByTournament returns players ordered by points descending, name
// ascending as the tie-break.
func (r *LeaderboardRepository) ListByTournament(_ context.Context, tournamentID string) ([]leaderboard.Player, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	byName := r.store.players[tournamentID]
	out := make([]leaderboard.Player, 0, len(byName))
	for _, item := range byName {
		out = append(out, copyPlayer(item))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *LeaderboardRepository) GetByName(_ context.Context, tournamentID, name string) (leaderboard.Player, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, exists := r.store.players[tournamentID][name]
	if !exists {
		return leaderboard.Player{}, false, nil
	}
	return copyPlayer(item), true, nil
}
