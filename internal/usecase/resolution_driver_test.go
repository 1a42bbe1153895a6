package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/generals-arena/tournament-api/internal/domain/game"
	"github.com/generals-arena/tournament-api/internal/domain/replay"
	"github.com/generals-arena/tournament-api/internal/domain/tournament"
	"github.com/generals-arena/tournament-api/internal/platform/cache"
	"github.com/generals-arena/tournament-api/internal/platform/logging"
)

func newDriverFixture(games map[string]game.Game, feed *stubFeed, outcomes *stubOutcomeRepo) (*ResolutionDriver, *stubGameRepo) {
	return newDriverFixtureWithCache(games, feed, outcomes, nil)
}

func newDriverFixtureWithCache(games map[string]game.Game, feed *stubFeed, outcomes *stubOutcomeRepo, cacheStore *cache.Store) (*ResolutionDriver, *stubGameRepo) {
	tourney := newTestTournament(1_000_000_000)
	tournamentRepo := &stubTournamentRepo{items: map[string]tournament.Tournament{tourney.ID: tourney}}
	gameRepo := &stubGameRepo{games: games}

	matcher := NewMatcherService(
		tournamentRepo,
		&stubPlayerRepo{players: registered("a", "b")},
		outcomes,
		feed,
		MatcherConfig{},
		logging.NewNop(),
	)
	driver := NewResolutionDriver(tournamentRepo, gameRepo, matcher, cacheStore, DriverConfig{Workers: 2}, logging.NewNop())
	return driver, gameRepo
}

func TestDriverTick_PendingGameBumpsRetryCounter(t *testing.T) {
	t.Parallel()

	games := map[string]game.Game{
		"g1": {ID: "g1", TournamentID: testTournamentID, Players: []string{"a", "b"}, Started: 1000},
	}
	driver, gameRepo := newDriverFixture(games, &stubFeed{}, &stubOutcomeRepo{})

	result, err := driver.Tick(context.Background())
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if result.Games != 1 || result.Pending != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(gameRepo.incremented) != 1 || gameRepo.incremented[0] != "g1" {
		t.Fatalf("pending game must bump its retry counter: %v", gameRepo.incremented)
	}
	if got := gameRepo.games["g1"].TimesChecked; got != 1 {
		t.Fatalf("retry counter: got=%d want=1", got)
	}
}

func TestDriverTick_AbandonedGameIsDeleted(t *testing.T) {
	t.Parallel()

	games := map[string]game.Game{
		"g1": {ID: "g1", TournamentID: testTournamentID, Players: []string{"a", "b"}, TimesChecked: 120},
	}
	driver, gameRepo := newDriverFixture(games, &stubFeed{}, &stubOutcomeRepo{})

	result, err := driver.Tick(context.Background())
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if result.Abandoned != 1 {
		t.Fatalf("expected one abandoned game, got %+v", result)
	}
	if len(gameRepo.deleted) != 1 || gameRepo.deleted[0] != "g1" {
		t.Fatalf("abandoned game must be deleted: %v", gameRepo.deleted)
	}
	if _, ok := gameRepo.games["g1"]; ok {
		t.Fatalf("abandoned game record must be gone")
	}
}

func TestDriverTick_ResolvedGameCounts(t *testing.T) {
	t.Parallel()

	shared := replay.Replay{ID: "r1", Started: 2000, Ranking: []string{"a", "b"}}
	feed := &stubFeed{
		histories: map[string][]replay.Replay{
			"a": {shared},
			"b": {shared},
		},
		stats: map[string]replay.Stats{
			"r1": {Turns: 100, Scores: []replay.Score{{Name: "a", Points: 10, Rank: 1, LastTurn: 100}}},
		},
	}
	games := map[string]game.Game{
		"g1": {ID: "g1", TournamentID: testTournamentID, Players: []string{"a", "b"}, Started: 1000},
	}
	outcomes := &stubOutcomeRepo{}
	driver, gameRepo := newDriverFixture(games, feed, outcomes)

	result, err := driver.Tick(context.Background())
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if result.Resolved != 1 || result.Pending != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(gameRepo.incremented) != 0 {
		t.Fatalf("resolved game must not bump the retry counter")
	}
	if len(outcomes.commits) != 1 {
		t.Fatalf("expected one commit, got %d", len(outcomes.commits))
	}
}

func TestDriverTick_ResolvedGameInvalidatesLeaderboardCache(t *testing.T) {
	t.Parallel()

	shared := replay.Replay{ID: "r1", Started: 2000, Ranking: []string{"a", "b"}}
	feed := &stubFeed{
		histories: map[string][]replay.Replay{
			"a": {shared},
			"b": {shared},
		},
		stats: map[string]replay.Stats{
			"r1": {Turns: 100, Scores: []replay.Score{{Name: "a", Points: 10, Rank: 1, LastTurn: 100}}},
		},
	}
	games := map[string]game.Game{
		"g1": {ID: "g1", TournamentID: testTournamentID, Players: []string{"a", "b"}, Started: 1000},
	}

	cacheStore := cache.NewStore(time.Hour)
	staleKey := "leaderboard:" + testTournamentID
	cacheStore.Set(context.Background(), staleKey, "stale leaderboard")
	otherKey := "leaderboard:other-tournament"
	cacheStore.Set(context.Background(), otherKey, "untouched")

	driver, _ := newDriverFixtureWithCache(games, feed, &stubOutcomeRepo{}, cacheStore)

	result, err := driver.Tick(context.Background())
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if result.Resolved != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if _, ok := cacheStore.Get(context.Background(), staleKey); ok {
		t.Fatalf("resolved game must drop the tournament's cached leaderboard")
	}
	if _, ok := cacheStore.Get(context.Background(), otherKey); !ok {
		t.Fatalf("other tournaments' cached views must survive")
	}
}

func TestDriverTick_EmptyBacklogIsANoop(t *testing.T) {
	t.Parallel()

	driver, _ := newDriverFixture(map[string]game.Game{}, &stubFeed{}, &stubOutcomeRepo{})

	result, err := driver.Tick(context.Background())
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if result.Games != 0 {
		t.Fatalf("expected an empty tick, got %+v", result)
	}
}

func TestDriverTickTournament_UnknownTournament(t *testing.T) {
	t.Parallel()

	driver, _ := newDriverFixture(map[string]game.Game{}, &stubFeed{}, &stubOutcomeRepo{})

	_, err := driver.TickTournament(context.Background(), "no-such-tournament")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
