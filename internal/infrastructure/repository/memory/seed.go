package memory

import (
	"time"

	"github.com/generals-arena/tournament-api/internal/domain/bracket"
	"github.com/generals-arena/tournament-api/internal/domain/game"
	"github.com/generals-arena/tournament-api/internal/domain/leaderboard"
	"github.com/generals-arena/tournament-api/internal/domain/replay"
	"github.com/generals-arena/tournament-api/internal/domain/tournament"
)

const TournamentIDWeeklyFFA = "weekly-1v1-2026-08"

var seedPlayerNames = []string{
	"Spraget", "Wuped", "kimok", "Plurmorant",
	"Firefly", "pasghetti", "Zenyth", "human",
}

// NewSeededStore builds a store with one in-flight eight player double
// elimination tournament, used by the default app wiring and by tests.
func NewSeededStore() *Store {
	store := NewStore()

	start := time.Date(2026, time.August, 22, 18, 0, 0, 0, time.UTC).UnixMilli()
	store.PutTournament(tournament.Tournament{
		ID:          TournamentIDWeeklyFFA,
		Name:        "Weekly 1v1 Invitational",
		Server:      replay.ServerNA,
		StartTime:   start,
		EndTime:     start + 4*time.Hour.Milliseconds(),
		PlayerCount: 8,
	})

	for _, name := range seedPlayerNames {
		store.PutPlayer(leaderboard.Player{
			Name:         name,
			TournamentID: TournamentIDWeeklyFFA,
		})
	}

	store.PutGame(game.Game{
		ID:           "match-5",
		TournamentID: TournamentIDWeeklyFFA,
		Players:      []string{"Spraget", "kimok"},
		Started:      start + 30*time.Minute.Milliseconds(),
		Status:       game.StatusPending,
	})

	store.PutBracket(TournamentIDWeeklyFFA, seedBracket())
	return store
}

func seedBracket() bracket.Bracket {
	return bracket.Bracket{
		Winners: []bracket.Round{
			{
				WinningSets: 2,
				Matches: []bracket.Match{
					{Number: 1, Status: bracket.MatchComplete, Teams: [2]bracket.Team{
						{Name: "Spraget", Status: bracket.TeamActive},
						{Name: "human", Status: bracket.TeamActive},
					}},
					{Number: 2, Status: bracket.MatchComplete, Teams: [2]bracket.Team{
						{Name: "kimok", Status: bracket.TeamActive},
						{Name: "Zenyth", Status: bracket.TeamActive},
					}},
					{Number: 3, Status: bracket.MatchComplete, Teams: [2]bracket.Team{
						{Name: "Wuped", Status: bracket.TeamActive},
						{Name: "pasghetti", Status: bracket.TeamActive},
					}},
					{Number: 4, Status: bracket.MatchComplete, Teams: [2]bracket.Team{
						{Name: "Plurmorant", Status: bracket.TeamActive},
						{Name: "Firefly", Status: bracket.TeamActive},
					}},
				},
			},
			{
				WinningSets: 2,
				Matches: []bracket.Match{
					{Number: 5, Status: bracket.MatchReady, Teams: [2]bracket.Team{
						{Name: "Spraget", Status: bracket.TeamActive},
						{Name: "kimok", Status: bracket.TeamActive},
					}},
					{Number: 6, Status: bracket.MatchReady, Teams: [2]bracket.Team{
						{Name: "Wuped", Status: bracket.TeamActive},
						{Name: "Plurmorant", Status: bracket.TeamActive},
					}},
				},
			},
			{
				WinningSets: 3,
				Matches: []bracket.Match{
					{Number: 7, Status: bracket.MatchNotReady},
				},
			},
		},
		Losers: []bracket.Round{
			{
				WinningSets: 1,
				Matches: []bracket.Match{
					{Number: 8, Status: bracket.MatchReady, Teams: [2]bracket.Team{
						{Name: "human", Status: bracket.TeamActive},
						{Name: "Zenyth", Status: bracket.TeamActive},
					}},
					{Number: 9, Status: bracket.MatchReady, Teams: [2]bracket.Team{
						{Name: "pasghetti", Status: bracket.TeamActive},
						{Name: "Firefly", Status: bracket.TeamActive},
					}},
				},
			},
			{
				WinningSets: 1,
				Matches: []bracket.Match{
					{Number: 10, Status: bracket.MatchNotReady, Teams: [2]bracket.Team{
						{Placeholder: "Loser of 5"},
						{},
					}},
					{Number: 11, Status: bracket.MatchNotReady, Teams: [2]bracket.Team{
						{Placeholder: "Loser of 6"},
						{},
					}},
				},
			},
			{
				WinningSets: 1,
				Matches: []bracket.Match{
					{Number: 12, Status: bracket.MatchNotReady},
				},
			},
			{
				WinningSets: 2,
				Matches: []bracket.Match{
					{Number: 13, Status: bracket.MatchNotReady, Teams: [2]bracket.Team{
						{Placeholder: "Loser of 7"},
						{},
					}},
				},
			},
		},
	}
}
