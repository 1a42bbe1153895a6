package game

import (
	"strings"

	"github.com/generals-arena/tournament-api/internal/domain/replay"
)

const (
	StatusPending  = "PENDING"
	StatusFinished = "FINISHED"
	StatusTooLate  = "TOO_LATE"
)

// Game is one pending or resolved bracket match instance.
//
// A game is created when a bracket match becomes playable and is mutated only
// by the resolution flow: TimesChecked climbs while the replay feed has no
// majority candidate, and the game is terminal once ReplayID is set or the
// record is deleted after the retry ceiling.
type Game struct {
	ID           string
	TournamentID string
	Players      []string
	Started      int64
	TimesChecked int
	ReplayID     string
	Status       string
	Resolved     *ResolvedReplay
}

// ResolvedReplay is the summarized statistics kept on a resolved game.
type ResolvedReplay struct {
	Scores  []replay.Score
	Summary string
	Turns   int
}

func (g Game) IsResolved() bool {
	return strings.TrimSpace(g.ReplayID) != ""
}

// HasPlayer reports whether name was one of the game's original players.
func (g Game) HasPlayer(name string) bool {
	for _, p := range g.Players {
		if p == name {
			return true
		}
	}
	return false
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusPending
	}
	return status
}
