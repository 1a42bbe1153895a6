package replay

import "strings"

// Server identifies which game server region a replay history is scoped to.
type Server string

const (
	ServerNA  Server = "na"
	ServerEU  Server = "eu"
	ServerBot Server = "bot"
)

func ParseServer(value string) (Server, bool) {
	switch Server(strings.ToLower(strings.TrimSpace(value))) {
	case ServerNA:
		return ServerNA, true
	case ServerEU:
		return ServerEU, true
	case ServerBot:
		return ServerBot, true
	default:
		return "", false
	}
}

// Replay is one immutable entry from the per-player history feed.
// Started is unix milliseconds; Ranking lists players best first.
type Replay struct {
	ID      string
	Started int64
	Ranking []string
}

// Score is one player's line from the full replay statistics,
// ordered by rank when returned in Stats.
type Score struct {
	Name     string
	Points   int
	Rank     int
	LastTurn int
}

// Stats is the full per-match statistics for a known replay id.
// Turns counts fixed-duration game ticks, one second of wall clock each.
type Stats struct {
	Scores  []Score
	Summary string
	Turns   int
}

const turnMillis = 1000

// FinishedAt estimates the wall-clock end of a replay from its tick count.
func (s Stats) FinishedAt(started int64) int64 {
	return started + int64(s.Turns)*turnMillis
}

// PlayerFinishedAt estimates when a single player's participation ended.
func PlayerFinishedAt(started int64, lastTurn int) int64 {
	return started + int64(lastTurn)*turnMillis
}
