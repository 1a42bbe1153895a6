package memory

import (
	"context"
	"fmt"

	"github.com/generals-arena/tournament-api/internal/usecase"
)

// OutcomeRepository applies a resolution commit against the shared store.
// The whole commit runs under one write lock, so a reader can never observe
// a claimed replay without its leaderboard effects.
type OutcomeRepository struct {
	store *Store
}

func NewOutcomeRepository(store *Store) *OutcomeRepository {
	return &OutcomeRepository{store: store}
}

func (r *OutcomeRepository) CommitOutcome(_ context.Context, commit usecase.OutcomeCommit) (bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	g, exists := r.store.games[commit.TournamentID][commit.GameID]
	if !exists || g.IsResolved() {
		// A concurrent resolution won the race; this outcome is discarded.
		return false, nil
	}

	t, exists := r.store.tournaments[commit.TournamentID]
	if !exists {
		return false, fmt.Errorf("tournament %s not found", commit.TournamentID)
	}

	g.ReplayID = commit.ReplayID
	g.Status = commit.Status
	resolved := commit.Resolved
	g.Resolved = &resolved
	r.store.games[commit.TournamentID][commit.GameID] = g

	if !t.HasClaimedReplay(commit.ReplayID) {
		t.Replays = append(t.Replays, commit.ReplayID)
		r.store.tournaments[commit.TournamentID] = t
	}

	byName := r.store.players[commit.TournamentID]
	for name, points := range commit.PointsByName {
		player, ok := byName[name]
		if !ok {
			continue
		}
		player.Points += points
		byName[name] = player
	}
	for name, streak := range commit.StreakByName {
		player, ok := byName[name]
		if !ok {
			continue
		}
		player.CurrentStreak = streak
		byName[name] = player
	}
	for _, record := range commit.Records {
		player, ok := byName[record.Name]
		if !ok {
			continue
		}
		player.Record = append(player.Record, record)
		byName[record.Name] = player
	}

	return true, nil
}
