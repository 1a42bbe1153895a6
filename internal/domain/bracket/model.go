package bracket

import (
	"regexp"
	"strconv"
)

const (
	MatchNotReady   = "NOT_READY"
	MatchReady      = "READY"
	MatchInProgress = "IN_PROGRESS"
	MatchComplete   = "COMPLETE"
)

const (
	TeamActive     = "ACTIVE"
	TeamEliminated = "ELIMINATED"
)

// Bracket is a full double-elimination structure: a winners sequence of
// rounds followed by a losers sequence, each indexed from round 0.
type Bracket struct {
	Winners []Round
	Losers  []Round
}

type Round struct {
	Matches     []Match
	WinningSets int
}

// Match is one bracket node. Teams is a fixed pair: before the feeding match
// completes a team carries either a concrete Name or an unresolved
// Placeholder; once resolved, Name is authoritative and the placeholder is
// kept only as historical metadata.
type Match struct {
	Number int
	Teams  [2]Team
	Status string
}

// Team is one slot of a match. FeederMatch is the integer edge resolved from
// the textual placeholder ("Loser of <n>") at snapshot-build time; zero means
// no explicit feeder reference and the positional pairing rule applies.
type Team struct {
	Name        string
	Placeholder string
	FeederMatch int
	Status      string
}

var loserOfPattern = regexp.MustCompile(`^Loser of (\d+)$`)

// ParseLoserPlaceholder extracts the feeding match number from a
// "Loser of <n>" placeholder.
func ParseLoserPlaceholder(placeholder string) (int, bool) {
	groups := loserOfPattern.FindStringSubmatch(placeholder)
	if groups == nil {
		return 0, false
	}
	number, err := strconv.Atoi(groups[1])
	if err != nil || number <= 0 {
		return 0, false
	}
	return number, true
}

// ResolveFeeders binds every parseable placeholder to its integer feeder
// edge. Placeholders that do not parse are left with FeederMatch zero; the
// navigator treats those slots by the positional pairing rule.
func (b *Bracket) ResolveFeeders() {
	resolve := func(rounds []Round) {
		for r := range rounds {
			for m := range rounds[r].Matches {
				for t := range rounds[r].Matches[m].Teams {
					team := &rounds[r].Matches[m].Teams[t]
					if team.Placeholder == "" || team.FeederMatch != 0 {
						continue
					}
					if number, ok := ParseLoserPlaceholder(team.Placeholder); ok {
						team.FeederMatch = number
					}
				}
			}
		}
	}
	resolve(b.Winners)
	resolve(b.Losers)
}
