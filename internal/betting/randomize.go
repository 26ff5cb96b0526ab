package betting

import "slices"

// Rand is the randomness Randomize and PlanBudget draw from.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

// Randomize draws one to three distinct outcomes for every game. When the draw breaks
// the doubles-only or triples-only cap, every game is collapsed to one random outcome.
// The repair deliberately checks the "only" caps even for mixed draws.
func Randomize(totalGames int, rng Rand, rules Rules) Selections {
	selections := make(Selections, totalGames)
	for i := 1; i <= totalGames; i++ {
		n := rng.IntN(len(Outcomes)) + 1
		selections[GameKey(i)] = drawDistinct(rng, n)
	}

	doubles, triples := tally(selections)
	if doubles > rules.MaxOnlyDoubles || triples > rules.MaxOnlyTriples {
		for i := 1; i <= totalGames; i++ {
			selections[GameKey(i)] = Picks{Outcomes[rng.IntN(len(Outcomes))]}
		}
	}
	return selections
}

func drawDistinct(rng Rand, n int) Picks {
	available := slices.Clone(Outcomes)
	chosen := make([]Outcome, 0, n)
	for j := 0; j < n && len(available) > 0; j++ {
		idx := rng.IntN(len(available))
		chosen = append(chosen, available[idx])
		available = slices.Delete(available, idx, idx+1)
	}
	return NewPicks(chosen...)
}
