package postgres

import (
	"github.com/lib/pq"

	"github.com/generals-arena/tournament-api/internal/domain/replay"
	"github.com/generals-arena/tournament-api/internal/domain/tournament"
)

type tournamentTableModel struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Server      string         `db:"server"`
	StartTime   int64          `db:"start_time"`
	EndTime     int64          `db:"end_time"`
	Replays     pq.StringArray `db:"replays"`
	PlayerCount int            `db:"player_count"`
}

func (m tournamentTableModel) toDomain() tournament.Tournament {
	return tournament.Tournament{
		ID:          m.ID,
		Name:        m.Name,
		Server:      replay.Server(m.Server),
		StartTime:   m.StartTime,
		EndTime:     m.EndTime,
		Replays:     append([]string(nil), m.Replays...),
		PlayerCount: m.PlayerCount,
	}
}
