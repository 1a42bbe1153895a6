package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/generals-arena/tournament-api/internal/domain/game"
)

type GameRepository struct {
	store *Store
}

func NewGameRepository(store *Store) *GameRepository {
	return &GameRepository{store: store}
}

func (r *GameRepository) ListPendingByTournament(_ context.Context, tournamentID string) ([]game.Game, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	byID := r.store.games[tournamentID]
	out := make([]game.Game, 0, len(byID))
	for _, item := range byID {
		if item.IsResolved() {
			continue
		}
		out = append(out, copyGame(item))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *GameRepository) GetByID(_ context.Context, tournamentID, gameID string) (game.Game, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, exists := r.store.games[tournamentID][gameID]
	if !exists {
		return game.Game{}, false, nil
	}
	return copyGame(item), true, nil
}

func (r *GameRepository) IncrementTimesChecked(_ context.Context, tournamentID, gameID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, exists := r.store.games[tournamentID][gameID]
	if !exists {
		return fmt.Errorf("game %s/%s not found", tournamentID, gameID)
	}
	item.TimesChecked++
	r.store.games[tournamentID][gameID] = item
	return nil
}

func (r *GameRepository) Delete(_ context.Context, tournamentID, gameID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.games[tournamentID], gameID)
	return nil
}
