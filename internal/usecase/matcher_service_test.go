package usecase

import (
	"context"
	"testing"

	"github.com/generals-arena/tournament-api/internal/domain/game"
	"github.com/generals-arena/tournament-api/internal/domain/leaderboard"
	"github.com/generals-arena/tournament-api/internal/domain/replay"
	"github.com/generals-arena/tournament-api/internal/domain/tournament"
	"github.com/generals-arena/tournament-api/internal/platform/logging"
)

const testTournamentID = "weekly-1"

func newTestTournament(endTime int64, claimed ...string) tournament.Tournament {
	return tournament.Tournament{
		ID:          testTournamentID,
		Name:        "Weekly",
		Server:      replay.ServerNA,
		StartTime:   0,
		EndTime:     endTime,
		Replays:     claimed,
		PlayerCount: 8,
	}
}

func newMatcher(t tournament.Tournament, players map[string]leaderboard.Player, feed *stubFeed, outcomes *stubOutcomeRepo) *MatcherService {
	return NewMatcherService(
		&stubTournamentRepo{items: map[string]tournament.Tournament{t.ID: t}},
		&stubPlayerRepo{players: players},
		outcomes,
		feed,
		MatcherConfig{},
		logging.NewNop(),
	)
}

func registered(names ...string) map[string]leaderboard.Player {
	out := make(map[string]leaderboard.Player, len(names))
	for _, name := range names {
		out[name] = leaderboard.Player{Name: name, TournamentID: testTournamentID}
	}
	return out
}

func TestMatcherResolve_StrictMajorityBoundary(t *testing.T) {
	t.Parallel()

	tourney := newTestTournament(1_000_000_000)
	g := game.Game{
		ID:           "g1",
		TournamentID: testTournamentID,
		Players:      []string{"a", "b", "c", "d"},
		Started:      1000,
	}
	shared := replay.Replay{ID: "r1", Started: 2000, Ranking: []string{"a", "b", "c", "d"}}

	// Exactly half of the players carry the candidate: not a majority.
	feed := &stubFeed{
		histories: map[string][]replay.Replay{
			"a": {shared},
			"b": {shared},
		},
	}
	outcomes := &stubOutcomeRepo{}
	matcher := newMatcher(tourney, registered("a", "b", "c", "d"), feed, outcomes)

	outcome, err := matcher.Resolve(context.Background(), g)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if outcome.Kind != OutcomeStillPending {
		t.Fatalf("half support must stay pending, got kind=%d", outcome.Kind)
	}
	if len(outcomes.commits) != 0 {
		t.Fatalf("pending outcome must not commit, got %d commits", len(outcomes.commits))
	}

	// One more player tips it over the strict majority.
	feed.histories["c"] = []replay.Replay{shared}
	feed.stats = map[string]replay.Stats{
		"r1": {
			Turns: 100,
			Scores: []replay.Score{
				{Name: "a", Points: 10, Rank: 1, LastTurn: 100},
				{Name: "b", Points: 5, Rank: 2, LastTurn: 80},
			},
		},
	}

	outcome, err = matcher.Resolve(context.Background(), g)
	if err != nil {
		t.Fatalf("resolve with majority: %v", err)
	}
	if outcome.Kind != OutcomeResolved || outcome.ReplayID != "r1" {
		t.Fatalf("expected resolution with r1, got %+v", outcome)
	}
	if outcome.SupportCount != 3 {
		t.Fatalf("expected support 3, got %d", outcome.SupportCount)
	}
}

func TestMatcherResolve_AbandonAtRetryCeiling(t *testing.T) {
	t.Parallel()

	tourney := newTestTournament(1_000_000_000)
	outcomes := &stubOutcomeRepo{}
	matcher := newMatcher(tourney, registered("a", "b"), &stubFeed{}, outcomes)

	g := game.Game{
		ID:           "g1",
		TournamentID: testTournamentID,
		Players:      []string{"a", "b"},
		TimesChecked: 120,
	}

	outcome, err := matcher.Resolve(context.Background(), g)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if outcome.Kind != OutcomeAbandoned {
		t.Fatalf("expected abandonment at retry ceiling, got kind=%d", outcome.Kind)
	}
}

func TestMatcherResolve_AlreadyResolvedIsNoop(t *testing.T) {
	t.Parallel()

	tourney := newTestTournament(1_000_000_000)
	outcomes := &stubOutcomeRepo{}
	matcher := newMatcher(tourney, registered("a", "b"), &stubFeed{}, outcomes)

	g := game.Game{
		ID:           "g1",
		TournamentID: testTournamentID,
		Players:      []string{"a", "b"},
		ReplayID:     "r-done",
	}

	outcome, err := matcher.Resolve(context.Background(), g)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if outcome.Kind != OutcomeAlreadyResolved || outcome.ReplayID != "r-done" {
		t.Fatalf("expected already-resolved no-op, got %+v", outcome)
	}
	if len(outcomes.commits) != 0 {
		t.Fatalf("no-op must not commit")
	}
}

func TestMatcherResolve_ClaimedReplayIsFiltered(t *testing.T) {
	t.Parallel()

	tourney := newTestTournament(1_000_000_000, "r1")
	shared := replay.Replay{ID: "r1", Started: 2000, Ranking: []string{"a", "b"}}
	feed := &stubFeed{
		histories: map[string][]replay.Replay{
			"a": {shared},
			"b": {shared},
		},
	}
	outcomes := &stubOutcomeRepo{}
	matcher := newMatcher(tourney, registered("a", "b"), feed, outcomes)

	g := game.Game{ID: "g1", TournamentID: testTournamentID, Players: []string{"a", "b"}, Started: 1000}
	outcome, err := matcher.Resolve(context.Background(), g)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if outcome.Kind != OutcomeStillPending {
		t.Fatalf("claimed replay must be filtered out, got kind=%d", outcome.Kind)
	}
}

func TestMatcherResolve_CandidateFilters(t *testing.T) {
	t.Parallel()

	tourney := newTestTournament(1_000_000_000)
	tooEarly := replay.Replay{ID: "r-early", Started: 1000, Ranking: []string{"a", "b"}}
	tooBig := replay.Replay{ID: "r-big", Started: 2000, Ranking: []string{"a", "b", "x"}}
	feed := &stubFeed{
		histories: map[string][]replay.Replay{
			"a": {tooEarly, tooBig},
			"b": {tooEarly, tooBig},
		},
	}
	outcomes := &stubOutcomeRepo{}
	matcher := newMatcher(tourney, registered("a", "b"), feed, outcomes)

	// Started equal to the game start is not strictly after; oversized
	// rankings cannot be this game.
	g := game.Game{ID: "g1", TournamentID: testTournamentID, Players: []string{"a", "b"}, Started: 1000}
	outcome, err := matcher.Resolve(context.Background(), g)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if outcome.Kind != OutcomeStillPending {
		t.Fatalf("filtered candidates must leave the game pending, got kind=%d", outcome.Kind)
	}
}

func TestMatcherResolve_AllFetchesFailedRetriesWholeTick(t *testing.T) {
	t.Parallel()

	tourney := newTestTournament(1_000_000_000)
	feed := &stubFeed{failFor: map[string]bool{"a": true, "b": true}}
	outcomes := &stubOutcomeRepo{}
	matcher := newMatcher(tourney, registered("a", "b"), feed, outcomes)

	g := game.Game{ID: "g1", TournamentID: testTournamentID, Players: []string{"a", "b"}, Started: 1000}
	outcome, err := matcher.Resolve(context.Background(), g)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if outcome.Kind != OutcomeStillPending {
		t.Fatalf("feed blackout must retry next tick, got kind=%d", outcome.Kind)
	}
}

func TestMatcherResolve_TooLateClaimsWithoutScoring(t *testing.T) {
	t.Parallel()

	// The replay finishes at 1100 + 50*1000, far past the tournament end.
	tourney := newTestTournament(1600)
	shared := replay.Replay{ID: "r1", Started: 1100, Ranking: []string{"a", "b"}}
	feed := &stubFeed{
		histories: map[string][]replay.Replay{
			"a": {shared},
			"b": {shared},
		},
		stats: map[string]replay.Stats{
			"r1": {
				Turns: 50,
				Scores: []replay.Score{
					{Name: "a", Points: 10, Rank: 1, LastTurn: 50},
					{Name: "b", Points: 5, Rank: 2, LastTurn: 40},
				},
			},
		},
	}
	outcomes := &stubOutcomeRepo{}
	matcher := newMatcher(tourney, registered("a", "b"), feed, outcomes)

	g := game.Game{ID: "g1", TournamentID: testTournamentID, Players: []string{"a", "b"}, Started: 1000}
	outcome, err := matcher.Resolve(context.Background(), g)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if outcome.Kind != OutcomeResolved || !outcome.TooLate {
		t.Fatalf("expected too-late resolution, got %+v", outcome)
	}

	commit, ok := outcomes.lastCommit()
	if !ok {
		t.Fatalf("too-late outcome must still commit the claim")
	}
	if commit.ReplayID != "r1" || commit.Status != game.StatusTooLate {
		t.Fatalf("unexpected commit: replay=%s status=%s", commit.ReplayID, commit.Status)
	}
	if len(commit.Records) != 0 || len(commit.PointsByName) != 0 || len(commit.StreakByName) != 0 {
		t.Fatalf("too-late commit must not touch the leaderboard: %+v", commit)
	}
}

func TestMatcherResolve_StreakDoubling(t *testing.T) {
	t.Parallel()

	tourney := newTestTournament(1_000_000_000)
	shared := replay.Replay{ID: "r1", Started: 2000, Ranking: []string{"a", "b"}}
	feed := &stubFeed{
		histories: map[string][]replay.Replay{
			"a": {shared},
			"b": {shared},
		},
		stats: map[string]replay.Stats{
			"r1": {
				Turns: 100,
				Scores: []replay.Score{
					{Name: "a", Points: 10, Rank: 1, LastTurn: 100},
					{Name: "b", Points: 5, Rank: 2, LastTurn: 80},
				},
			},
		},
	}

	players := registered("a", "b")
	players["a"] = leaderboard.Player{Name: "a", TournamentID: testTournamentID, CurrentStreak: 2}
	outcomes := &stubOutcomeRepo{}
	matcher := newMatcher(tourney, players, feed, outcomes)

	g := game.Game{ID: "g1", TournamentID: testTournamentID, Players: []string{"a", "b"}, Started: 1000}
	if _, err := matcher.Resolve(context.Background(), g); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	commit, ok := outcomes.lastCommit()
	if !ok {
		t.Fatalf("expected a commit")
	}
	if commit.PointsByName["a"] != 20 {
		t.Fatalf("winner on a streak of 2 must double the award: got %d", commit.PointsByName["a"])
	}
	if commit.PointsByName["b"] != 5 {
		t.Fatalf("loser award must stay as scored: got %d", commit.PointsByName["b"])
	}
	if commit.StreakByName["a"] != 3 || commit.StreakByName["b"] != 0 {
		t.Fatalf("streaks must advance winner and reset others: %+v", commit.StreakByName)
	}

	var winnerRecord *leaderboard.MatchRecord
	for i := range commit.Records {
		if commit.Records[i].Name == "a" {
			winnerRecord = &commit.Records[i]
		}
	}
	if winnerRecord == nil || !winnerRecord.Streak {
		t.Fatalf("winner record must carry the streak flag: %+v", commit.Records)
	}
}

func TestMatcherResolve_NoDoublingBelowStreakFloor(t *testing.T) {
	t.Parallel()

	tourney := newTestTournament(1_000_000_000)
	shared := replay.Replay{ID: "r1", Started: 2000, Ranking: []string{"a", "b"}}
	feed := &stubFeed{
		histories: map[string][]replay.Replay{
			"a": {shared},
			"b": {shared},
		},
		stats: map[string]replay.Stats{
			"r1": {
				Turns:  100,
				Scores: []replay.Score{{Name: "a", Points: 10, Rank: 1, LastTurn: 100}},
			},
		},
	}

	players := registered("a", "b")
	players["a"] = leaderboard.Player{Name: "a", TournamentID: testTournamentID, CurrentStreak: 1}
	outcomes := &stubOutcomeRepo{}
	matcher := newMatcher(tourney, players, feed, outcomes)

	g := game.Game{ID: "g1", TournamentID: testTournamentID, Players: []string{"a", "b"}, Started: 1000}
	if _, err := matcher.Resolve(context.Background(), g); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	commit, _ := outcomes.lastCommit()
	if commit.PointsByName["a"] != 10 {
		t.Fatalf("a streak of 1 must not double: got %d", commit.PointsByName["a"])
	}
	if commit.StreakByName["a"] != 2 {
		t.Fatalf("winner streak must still advance: got %d", commit.StreakByName["a"])
	}
}

func TestMatcherResolve_UnregisteredScorersAreSkipped(t *testing.T) {
	t.Parallel()

	tourney := newTestTournament(1_000_000_000)
	shared := replay.Replay{ID: "r1", Started: 2000, Ranking: []string{"a", "ghost"}}
	feed := &stubFeed{
		histories: map[string][]replay.Replay{
			"a": {shared},
			"b": {shared},
		},
		stats: map[string]replay.Stats{
			"r1": {
				Turns: 100,
				Scores: []replay.Score{
					{Name: "a", Points: 10, Rank: 1, LastTurn: 100},
					{Name: "ghost", Points: 5, Rank: 2, LastTurn: 90},
				},
			},
		},
	}
	outcomes := &stubOutcomeRepo{}
	matcher := newMatcher(tourney, registered("a", "b"), feed, outcomes)

	g := game.Game{ID: "g1", TournamentID: testTournamentID, Players: []string{"a", "b"}, Started: 1000}
	if _, err := matcher.Resolve(context.Background(), g); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	commit, _ := outcomes.lastCommit()
	if _, ok := commit.PointsByName["ghost"]; ok {
		t.Fatalf("unregistered scorer must not receive points")
	}
	if len(commit.Records) != 1 || commit.Records[0].Name != "a" {
		t.Fatalf("expected a single record for the registered scorer, got %+v", commit.Records)
	}
}

func TestMatcherResolve_LostCommitRaceIsDiscarded(t *testing.T) {
	t.Parallel()

	tourney := newTestTournament(1_000_000_000)
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
	outcomes := &stubOutcomeRepo{reject: true}
	matcher := newMatcher(tourney, registered("a", "b"), feed, outcomes)

	g := game.Game{ID: "g1", TournamentID: testTournamentID, Players: []string{"a", "b"}, Started: 1000}
	outcome, err := matcher.Resolve(context.Background(), g)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if outcome.Kind != OutcomeAlreadyResolved {
		t.Fatalf("lost race must report already resolved, got kind=%d", outcome.Kind)
	}
}

func TestPrevalentReplay_TieKeepsFirstEncountered(t *testing.T) {
	t.Parallel()

	tourney := newTestTournament(1_000_000_000)
	first := replay.Replay{ID: "r-first", Started: 2000, Ranking: []string{"a", "b"}}
	second := replay.Replay{ID: "r-second", Started: 2100, Ranking: []string{"a", "b"}}

	g := game.Game{ID: "g1", TournamentID: testTournamentID, Players: []string{"a", "b", "c", "d"}, Started: 1000}
	histories := [][]replay.Replay{
		{first, second},
		{first, second},
	}

	best, count := prevalentReplay(histories, g, tourney)
	if best.ID != "r-first" || count != 2 {
		t.Fatalf("tie must keep the first-encountered replay: got (%s, %d)", best.ID, count)
	}
}

func TestPrevalentReplay_DuplicateInOneHistoryCountsOnce(t *testing.T) {
	t.Parallel()

	tourney := newTestTournament(1_000_000_000)
	item := replay.Replay{ID: "r1", Started: 2000, Ranking: []string{"a", "b"}}
	g := game.Game{ID: "g1", TournamentID: testTournamentID, Players: []string{"a", "b", "c"}, Started: 1000}

	histories := [][]replay.Replay{
		{item, item, item},
	}

	_, count := prevalentReplay(histories, g, tourney)
	if count != 1 {
		t.Fatalf("one player's duplicates must count once, got %d", count)
	}
}
