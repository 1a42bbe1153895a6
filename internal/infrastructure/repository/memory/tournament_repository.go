package memory

import (
	"context"
	"sort"

	"github.com/generals-arena/tournament-api/internal/domain/tournament"
)

type TournamentRepository struct {
	store *Store
}

func NewTournamentRepository(store *Store) *TournamentRepository {
	return &TournamentRepository{store: store}
}

func (r *TournamentRepository) List(_ context.Context) ([]tournament.Tournament, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]tournament.Tournament, 0, len(r.store.tournaments))
	for _, item := range r.store.tournaments {
		out = append(out, copyTournament(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (r *TournamentRepository) GetByID(_ context.Context, tournamentID string) (tournament.Tournament, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, exists := r.store.tournaments[tournamentID]
	if !exists {
		return tournament.Tournament{}, false, nil
	}
	return copyTournament(item), true, nil
}
