package postgres

import "github.com/generals-arena/tournament-api/internal/domain/leaderboard"

type playerTableModel struct {
	TournamentID  string `db:"tournament_id"`
	Name          string `db:"name"`
	Points        int    `db:"points"`
	CurrentStreak int    `db:"current_streak"`
}

type matchRecordTableModel struct {
	TournamentID string `db:"tournament_id"`
	ReplayID     string `db:"replay_id"`
	Name         string `db:"name"`
	Points       int    `db:"points"`
	Rank         int    `db:"rank"`
	LastTurn     int    `db:"last_turn"`
	FinishTime   int64  `db:"finish_time"`
	Streak       bool   `db:"streak"`
}

func (m matchRecordTableModel) toDomain() leaderboard.MatchRecord {
	return leaderboard.MatchRecord{
		ReplayID:   m.ReplayID,
		Name:       m.Name,
		Points:     m.Points,
		Rank:       m.Rank,
		LastTurn:   m.LastTurn,
		FinishTime: m.FinishTime,
		Streak:     m.Streak,
	}
}
