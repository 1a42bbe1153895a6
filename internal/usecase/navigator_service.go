package usecase

import (
	"github.com/generals-arena/tournament-api/internal/domain/bracket"
	"github.com/generals-arena/tournament-api/internal/platform/logging"
)

type StatusKind int

const (
	// StatusIdle means the player appears in no unresolved match.
	StatusIdle StatusKind = iota
	// StatusReady means the player's next match is waiting on them.
	StatusReady
	// StatusSpectate means the player is waiting on a feeding match.
	StatusSpectate
	// StatusEliminated means a completed match flagged the player's team out.
	StatusEliminated
)

// PlayerStatus is one player's projected position in the bracket.
type PlayerStatus struct {
	Kind        StatusKind
	MatchNumber int

	// Ready fields.
	Opponent    string
	WinningSets int

	// Spectate fields. RootedForWinner is false when the player needs the
	// feeding match's loser to drop into their losers-bracket slot.
	Player1         string
	Player2         string
	RootedForWinner bool
}

// NavigatorService projects a player's current actionable status from a
// bracket snapshot. It performs no I/O and recomputes from scratch on every
// call; bracket size is tens of matches, so the scan is cheap.
type NavigatorService struct {
	logger *logging.Logger
}

func NewNavigatorService(logger *logging.Logger) *NavigatorService {
	if logger == nil {
		logger = logging.Default()
	}
	return &NavigatorService{logger: logger}
}

// StatusFor scans every match for playerName and reduces the findings to one
// status. Elimination is sticky: once any completed match flags the player's
// team ELIMINATED, a later completed match cannot revive them, and the
// projection reports Eliminated over anything else.
func (s *NavigatorService) StatusFor(b bracket.Bracket, playerName string) PlayerStatus {
	if playerName == "" {
		return PlayerStatus{Kind: StatusIdle}
	}

	idx := bracket.NewIndex(b)
	combined := append(append([]bracket.Round{}, b.Winners...), b.Losers...)

	var ready, spectate *PlayerStatus
	eliminated := false

	for r, round := range combined {
		for m, match := range round.Matches {
			slot := teamSlot(match, playerName)
			if slot < 0 {
				continue
			}

			switch match.Status {
			case bracket.MatchReady:
				if ready == nil {
					ready = s.readyStatus(match, slot, round.WinningSets)
				}
			case bracket.MatchComplete:
				if match.Teams[slot].Status == bracket.TeamEliminated {
					eliminated = true
				}
			default:
				if spectate == nil {
					spectate = s.spectateStatus(b, idx, r, m, slot)
				}
			}
		}
	}

	switch {
	case eliminated:
		return PlayerStatus{Kind: StatusEliminated}
	case ready != nil:
		return *ready
	case spectate != nil:
		return *spectate
	default:
		return PlayerStatus{Kind: StatusIdle}
	}
}

func teamSlot(match bracket.Match, playerName string) int {
	for i, team := range match.Teams {
		if team.Name == playerName {
			return i
		}
	}
	return -1
}

func (s *NavigatorService) readyStatus(match bracket.Match, slot, winningSets int) *PlayerStatus {
	return &PlayerStatus{
		Kind:        StatusReady,
		MatchNumber: match.Number,
		Opponent:    match.Teams[1-slot].Name,
		WinningSets: winningSets,
	}
}

// spectateStatus walks backward from the player's pending match to the match
// whose outcome gates it. Ill-formed snapshots degrade to no status rather
// than failing the whole projection, since bracket data comes from a builder
// this component does not control.
func (s *NavigatorService) spectateStatus(b bracket.Bracket, idx bracket.Index, round, match, slot int) *PlayerStatus {
	waitingOn, rootedForWinner, ok := s.feedingMatch(b, idx, round, match, slot)
	if !ok {
		return nil
	}

	return &PlayerStatus{
		Kind:            StatusSpectate,
		MatchNumber:     waitingOn.Number,
		Player1:         waitingOn.Teams[0].Name,
		Player2:         waitingOn.Teams[1].Name,
		RootedForWinner: rootedForWinner,
	}
}

func (s *NavigatorService) feedingMatch(b bracket.Bracket, idx bracket.Index, round, match, slot int) (bracket.Match, bool, bool) {
	if round < len(b.Winners) {
		// The last winners round has no winners feeder above it; the only
		// match left to wait on is the single final losers-bracket match.
		if round == len(b.Winners)-1 {
			if len(b.Losers) == 0 || len(b.Losers[len(b.Losers)-1].Matches) == 0 {
				s.logger.Warn("bracket has no final losers match", "round", round)
				return bracket.Match{}, false, false
			}
			return b.Losers[len(b.Losers)-1].Matches[0], true, true
		}

		// Standard pairing: a match's two feeders are 2m and 2m+1 in the
		// prior round, the opponent's side being the one to watch.
		if round == 0 {
			return bracket.Match{}, false, false
		}
		offset := feederSlotOffset(slot)
		prior := b.Winners[round-1].Matches
		feeder := match*2 + offset
		if feeder >= len(prior) {
			s.logger.Warn("winners feeder index out of range", "round", round, "match", match, "feeder", feeder)
			return bracket.Match{}, false, false
		}
		return prior[feeder], true, true
	}

	// Losers bracket: re-index the combined round number back to a local
	// losers round.
	if len(b.Winners) == 0 {
		return bracket.Match{}, false, false
	}
	round = round % len(b.Winners)
	if round >= len(b.Losers) || match >= len(b.Losers[round].Matches) {
		s.logger.Warn("losers round out of range", "round", round, "match", match)
		return bracket.Match{}, false, false
	}

	myMatch := b.Losers[round].Matches[match]

	// An explicit feeder edge on slot 1 points at the winners match whose
	// loser drops into this slot; the player roots for that match's loser.
	if feeder := myMatch.Teams[1].FeederMatch; feeder != 0 {
		waitingOn, ok := idx.Lookup(b, feeder)
		if !ok {
			s.logger.Warn("feeder match not found in bracket", "feeder", feeder, "placeholder", myMatch.Teams[1].Placeholder)
			return bracket.Match{}, false, false
		}
		return waitingOn, false, true
	}

	// No edge: the feeder comes from the prior losers round. Mixing rounds
	// (even local index) pair like winners rounds do; advancing rounds map
	// match index straight through.
	if round == 0 {
		return bracket.Match{}, false, false
	}
	feeder := match
	if round%2 == 0 {
		feeder = match*2 + feederSlotOffset(slot)
	}
	prior := b.Losers[round-1].Matches
	if feeder >= len(prior) {
		s.logger.Warn("losers feeder index out of range", "round", round, "match", match, "feeder", feeder)
		return bracket.Match{}, false, false
	}
	return prior[feeder], true, true
}

// feederSlotOffset picks which of the two prior-round matches feeds the
// given slot: slot 0 watches feeder 2m+1, slot 1 watches feeder 2m.
func feederSlotOffset(slot int) int {
	if slot == 0 {
		return 1
	}
	return 0
}
