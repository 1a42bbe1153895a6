package memory

import (
	"sync"

	"github.com/generals-arena/tournament-api/internal/domain/bracket"
	"github.com/generals-arena/tournament-api/internal/domain/game"
	"github.com/generals-arena/tournament-api/internal/domain/leaderboard"
	"github.com/generals-arena/tournament-api/internal/domain/tournament"
)

// Store is the shared in-process state behind every memory repository.
// All repositories wrap the same instance so that an outcome commit can
// mutate the game, its tournament and the leaderboard under one lock.
type Store struct {
	mu          sync.RWMutex
	tournaments map[string]tournament.Tournament
	games       map[string]map[string]game.Game
	players     map[string]map[string]leaderboard.Player
	brackets    map[string]bracket.Bracket
}

func NewStore() *Store {
	return &Store{
		tournaments: make(map[string]tournament.Tournament),
		games:       make(map[string]map[string]game.Game),
		players:     make(map[string]map[string]leaderboard.Player),
		brackets:    make(map[string]bracket.Bracket),
	}
}

func (s *Store) PutTournament(item tournament.Tournament) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tournaments[item.ID] = item
}

func (s *Store) PutGame(item game.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID := s.games[item.TournamentID]
	if byID == nil {
		byID = make(map[string]game.Game)
		s.games[item.TournamentID] = byID
	}
	byID[item.ID] = item
}

func (s *Store) PutPlayer(item leaderboard.Player) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byName := s.players[item.TournamentID]
	if byName == nil {
		byName = make(map[string]leaderboard.Player)
		s.players[item.TournamentID] = byName
	}
	byName[item.Name] = item
}

// PutBracket stores a snapshot with its feeder edges resolved, so readers
// never see an unparsed placeholder.
func (s *Store) PutBracket(tournamentID string, b bracket.Bracket) {
	b.ResolveFeeders()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.brackets[tournamentID] = b
}

func copyGame(g game.Game) game.Game {
	out := g
	out.Players = append([]string(nil), g.Players...)
	if g.Resolved != nil {
		resolved := *g.Resolved
		resolved.Scores = append(resolved.Scores[:0:0], g.Resolved.Scores...)
		out.Resolved = &resolved
	}
	return out
}

func copyTournament(t tournament.Tournament) tournament.Tournament {
	out := t
	out.Replays = append([]string(nil), t.Replays...)
	return out
}

func copyPlayer(p leaderboard.Player) leaderboard.Player {
	out := p
	out.Record = append([]leaderboard.MatchRecord(nil), p.Record...)
	return out
}
