package postgres

import (
	"database/sql"
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/lib/pq"

	"github.com/generals-arena/tournament-api/internal/domain/game"
)

type gameTableModel struct {
	ID           string         `db:"id"`
	TournamentID string         `db:"tournament_id"`
	Players      pq.StringArray `db:"players"`
	Started      int64          `db:"started"`
	TimesChecked int            `db:"times_checked"`
	ReplayID     sql.NullString `db:"replay_id"`
	Status       string         `db:"status"`
	Resolved     []byte         `db:"resolved"`
}

func (m gameTableModel) toDomain() (game.Game, error) {
	out := game.Game{
		ID:           m.ID,
		TournamentID: m.TournamentID,
		Players:      append([]string(nil), m.Players...),
		Started:      m.Started,
		TimesChecked: m.TimesChecked,
		ReplayID:     m.ReplayID.String,
		Status:       game.NormalizeStatus(m.Status),
	}
	if len(m.Resolved) > 0 {
		var resolved game.ResolvedReplay
		if err := sonic.Unmarshal(m.Resolved, &resolved); err != nil {
			return game.Game{}, fmt.Errorf("decode resolved replay for game %s: %w", m.ID, err)
		}
		out.Resolved = &resolved
	}
	return out, nil
}
