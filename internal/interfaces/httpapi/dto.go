package httpapi

import (
	"github.com/generals-arena/tournament-api/internal/domain/leaderboard"
	"github.com/generals-arena/tournament-api/internal/domain/tournament"
	"github.com/generals-arena/tournament-api/internal/usecase"
)

type tournamentDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Server      string   `json:"server"`
	StartTime   int64    `json:"startTime"`
	EndTime     int64    `json:"endTime"`
	PlayerCount int      `json:"playerCount"`
	Replays     []string `json:"replays"`
}

func tournamentToDTO(t tournament.Tournament) tournamentDTO {
	replays := t.Replays
	if replays == nil {
		replays = []string{}
	}
	return tournamentDTO{
		ID:          t.ID,
		Name:        t.Name,
		Server:      string(t.Server),
		StartTime:   t.StartTime,
		EndTime:     t.EndTime,
		PlayerCount: t.PlayerCount,
		Replays:     replays,
	}
}

type leaderboardPlayerDTO struct {
	Name          string           `json:"name"`
	Points        int              `json:"points"`
	CurrentStreak int              `json:"currentStreak"`
	Record        []matchRecordDTO `json:"record"`
}

type matchRecordDTO struct {
	ReplayID   string `json:"replayId"`
	Points     int    `json:"points"`
	Rank       int    `json:"rank"`
	LastTurn   int    `json:"lastTurn"`
	FinishTime int64  `json:"finishTime"`
	Streak     bool   `json:"streak"`
}

func playerToDTO(p leaderboard.Player) leaderboardPlayerDTO {
	records := make([]matchRecordDTO, 0, len(p.Record))
	for _, record := range p.Record {
		records = append(records, matchRecordDTO{
			ReplayID:   record.ReplayID,
			Points:     record.Points,
			Rank:       record.Rank,
			LastTurn:   record.LastTurn,
			FinishTime: record.FinishTime,
			Streak:     record.Streak,
		})
	}
	return leaderboardPlayerDTO{
		Name:          p.Name,
		Points:        p.Points,
		CurrentStreak: p.CurrentStreak,
		Record:        records,
	}
}

type playerStatusDTO struct {
	Player      string `json:"player"`
	Status      string `json:"status"`
	MatchNumber int    `json:"matchNumber,omitempty"`

	Opponent    string `json:"opponent,omitempty"`
	WinningSets int    `json:"winningSets,omitempty"`

	Player1         string `json:"player1,omitempty"`
	Player2         string `json:"player2,omitempty"`
	RootedForWinner *bool  `json:"rootedForWinner,omitempty"`
}

func statusToDTO(playerName string, status usecase.PlayerStatus) playerStatusDTO {
	out := playerStatusDTO{Player: playerName}
	switch status.Kind {
	case usecase.StatusReady:
		out.Status = "READY"
		out.MatchNumber = status.MatchNumber
		out.Opponent = status.Opponent
		out.WinningSets = status.WinningSets
	case usecase.StatusSpectate:
		out.Status = "SPECTATE"
		out.MatchNumber = status.MatchNumber
		out.Player1 = status.Player1
		out.Player2 = status.Player2
		rooted := status.RootedForWinner
		out.RootedForWinner = &rooted
	case usecase.StatusEliminated:
		out.Status = "ELIMINATED"
	default:
		out.Status = "IDLE"
	}
	return out
}
