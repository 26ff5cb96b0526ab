package betting

import (
	"cmp"
	"slices"
	"strconv"
)

// Outcome is a 1X2 prediction for a single fixture.
type Outcome string

const (
	Home Outcome = "1"
	Draw Outcome = "X"
	Away Outcome = "2"
)

// Outcomes lists the three predictions in the order the dashboard shows them.
var Outcomes = []Outcome{Home, Draw, Away}

func (o Outcome) Valid() bool {
	return o == Home || o == Draw || o == Away
}

// Picks is the set of outcomes chosen for one game.
// Values built through NewPicks, With or Without are deduplicated and sorted.
type Picks []Outcome

func NewPicks(outcomes ...Outcome) Picks {
	p := make(Picks, 0, len(outcomes))
	for _, o := range outcomes {
		if !slices.Contains(p, o) {
			p = append(p, o)
		}
	}
	slices.Sort(p)
	return p
}

func (p Picks) Has(o Outcome) bool {
	return slices.Contains(p, o)
}

func (p Picks) With(o Outcome) Picks {
	return NewPicks(append(slices.Clone(p), o)...)
}

func (p Picks) Without(o Outcome) Picks {
	out := make(Picks, 0, len(p))
	for _, existing := range p {
		if existing != o {
			out = append(out, existing)
		}
	}
	return NewPicks(out...)
}

// Toggle flips o and never returns an empty set: removing the last outcome yields {"1"}.
func (p Picks) Toggle(o Outcome) Picks {
	var next Picks
	if p.Has(o) {
		next = p.Without(o)
	} else {
		next = p.With(o)
	}
	if len(next) == 0 {
		return Picks{Home}
	}
	return next
}

// Selections maps a 1-based game number, as a decimal string, to its picks.
type Selections map[string]Picks

// NewSelections returns the starting slip for a jackpot: home win on every game.
func NewSelections(totalGames int) Selections {
	s := make(Selections, totalGames)
	for i := 1; i <= totalGames; i++ {
		s[GameKey(i)] = Picks{Home}
	}
	return s
}

func GameKey(n int) string {
	return strconv.Itoa(n)
}

func (s Selections) Clone() Selections {
	out := make(Selections, len(s))
	for k, v := range s {
		out[k] = slices.Clone(v)
	}
	return out
}

// Games returns the game numbers in ascending numeric order. Keys that are not
// integers sort last, in lexical order.
func (s Selections) Games() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b string) int {
		ai, aerr := strconv.Atoi(a)
		bi, berr := strconv.Atoi(b)
		switch {
		case aerr == nil && berr == nil:
			return cmp.Compare(ai, bi)
		case aerr == nil:
			return -1
		case berr == nil:
			return 1
		}
		return cmp.Compare(a, b)
	})
	return keys
}
