package memory

import (
	"context"
	"testing"

	"github.com/generals-arena/tournament-api/internal/domain/game"
)

func TestGameRepositoryListPending(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.PutGame(game.Game{ID: "m2", TournamentID: "t1", Players: []string{"a", "b"}})
	store.PutGame(game.Game{ID: "m1", TournamentID: "t1", Players: []string{"c", "d"}})
	store.PutGame(game.Game{ID: "m3", TournamentID: "t1", Players: []string{"e", "f"}, ReplayID: "r1"})
	store.PutGame(game.Game{ID: "m9", TournamentID: "other", Players: []string{"x", "y"}})

	repo := NewGameRepository(store)
	pending, err := repo.ListPendingByTournament(context.Background(), "t1")
	if err != nil {
		t.Fatalf("list pending: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("resolved and foreign games must be excluded: got %d", len(pending))
	}
	if pending[0].ID != "m1" || pending[1].ID != "m2" {
		t.Fatalf("pending games must be ordered by id: %s, %s", pending[0].ID, pending[1].ID)
	}
}

func TestGameRepositoryIncrementTimesChecked(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.PutGame(game.Game{ID: "m1", TournamentID: "t1", Players: []string{"a", "b"}})
	repo := NewGameRepository(store)

	for i := 0; i < 3; i++ {
		if err := repo.IncrementTimesChecked(context.Background(), "t1", "m1"); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}

	g, _, err := repo.GetByID(context.Background(), "t1", "m1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if g.TimesChecked != 3 {
		t.Fatalf("times checked: got=%d want=3", g.TimesChecked)
	}

	if err := repo.IncrementTimesChecked(context.Background(), "t1", "missing"); err == nil {
		t.Fatalf("expected an error for a missing game")
	}
}

func TestGameRepositoryDelete(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.PutGame(game.Game{ID: "m1", TournamentID: "t1", Players: []string{"a", "b"}})
	repo := NewGameRepository(store)

	if err := repo.Delete(context.Background(), "t1", "m1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, exists, _ := repo.GetByID(context.Background(), "t1", "m1"); exists {
		t.Fatalf("deleted game must be gone")
	}
}

func TestGameRepositoryReturnsCopies(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.PutGame(game.Game{ID: "m1", TournamentID: "t1", Players: []string{"a", "b"}})
	repo := NewGameRepository(store)

	g, _, err := repo.GetByID(context.Background(), "t1", "m1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	g.Players[0] = "mutated"

	again, _, err := repo.GetByID(context.Background(), "t1", "m1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if again.Players[0] != "a" {
		t.Fatalf("store state must not alias returned slices: %v", again.Players)
	}
}

func TestSeededStoreBracketHasResolvedFeeders(t *testing.T) {
	t.Parallel()

	store := NewSeededStore()
	b, exists, err := NewBracketRepository(store).GetByTournament(context.Background(), TournamentIDWeeklyFFA)
	if err != nil || !exists {
		t.Fatalf("seed bracket: exists=%v err=%v", exists, err)
	}

	final := b.Losers[len(b.Losers)-1].Matches[0]
	if final.Teams[1].FeederMatch != 7 {
		t.Fatalf("loser placeholder must be resolved to its feeder edge: %+v", final.Teams[1])
	}
}
