package tournament

import "github.com/generals-arena/tournament-api/internal/domain/replay"

// Tournament is one scheduled double-elimination event.
//
// Replays holds the ids of every replay already claimed by one of the
// tournament's games. A replay id appears at most once for the lifetime of
// the tournament: claiming is an idempotent set-union.
type Tournament struct {
	ID          string
	Name        string
	Server      replay.Server
	StartTime   int64
	EndTime     int64
	Replays     []string
	PlayerCount int
}

// HasClaimedReplay reports whether replayID was already counted by a game
// of this tournament.
func (t Tournament) HasClaimedReplay(replayID string) bool {
	for _, id := range t.Replays {
		if id == replayID {
			return true
		}
	}
	return false
}
