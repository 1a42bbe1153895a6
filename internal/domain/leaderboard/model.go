package leaderboard

// Player is one registered participant's running tournament record.
//
// Points and CurrentStreak are adjusted through atomic increments in the
// outcome commit, never overwritten wholesale, so concurrent commits from
// different games cannot lose updates.
type Player struct {
	Name          string
	TournamentID  string
	Points        int
	CurrentStreak int
	Record        []MatchRecord
}

// MatchRecord is an append-only audit entry for one (replay, player) pair.
type MatchRecord struct {
	ReplayID   string
	Name       string
	Points     int
	Rank       int
	LastTurn   int
	FinishTime int64
	Streak     bool
}
