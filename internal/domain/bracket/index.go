package bracket

// Side distinguishes the winners and losers halves of the bracket.
type Side int

const (
	SideWinners Side = iota
	SideLosers
)

// Location addresses one match inside a bracket snapshot.
type Location struct {
	Side  Side
	Round int
	Index int
}

// Index maps match numbers to their location, built once per snapshot so
// feeder lookups stay O(1) instead of rescanning every round.
type Index map[int]Location

func NewIndex(b Bracket) Index {
	idx := make(Index, 2*len(b.Winners))
	for r, round := range b.Winners {
		for m, match := range round.Matches {
			idx[match.Number] = Location{Side: SideWinners, Round: r, Index: m}
		}
	}
	for r, round := range b.Losers {
		for m, match := range round.Matches {
			idx[match.Number] = Location{Side: SideLosers, Round: r, Index: m}
		}
	}
	return idx
}

// Lookup returns the match addressed by number, if the snapshot contains it.
func (idx Index) Lookup(b Bracket, number int) (Match, bool) {
	loc, ok := idx[number]
	if !ok {
		return Match{}, false
	}
	rounds := b.Winners
	if loc.Side == SideLosers {
		rounds = b.Losers
	}
	if loc.Round >= len(rounds) || loc.Index >= len(rounds[loc.Round].Matches) {
		return Match{}, false
	}
	return rounds[loc.Round].Matches[loc.Index], true
}
