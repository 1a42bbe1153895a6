package memory

import (
	"context"

	"github.com/generals-arena/tournament-api/internal/domain/bracket"
)

type BracketRepository struct {
	store *Store
}

func NewBracketRepository(store *Store) *BracketRepository {
	return &BracketRepository{store: store}
}

func (r *BracketRepository) GetByTournament(_ context.Context, tournamentID string) (bracket.Bracket, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, exists := r.store.brackets[tournamentID]
	if !exists {
		return bracket.Bracket{}, false, nil
	}
	return item, true, nil
}
