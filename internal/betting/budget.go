package betting

import "fmt"

// PlanBudget builds a slip whose cost uses as much of budget as the rule table allows.
// It searches every legal doubles/triples split for the largest 2^d * 3^t that fits in
// budget / CostPerBet, then spreads the hedges over randomly chosen games.
func PlanBudget(budget int64, totalGames int, rng Rand, rules Rules) (Selections, error) {
	if err := rules.Check(); err != nil {
		return nil, err
	}
	maxCombinations := budget / rules.CostPerBet
	if maxCombinations < 1 {
		return nil, fmt.Errorf("%w: minimum required is %d", ErrBudgetTooLow, rules.CostPerBet)
	}

	bestDoubles, bestTriples := 0, 0
	bestGap := int64(-1)
	doubles := int64(1)
	for d := 0; d < min(rules.MaxOnlyDoubles+1, totalGames) && doubles <= maxCombinations; d++ {
		combinations := doubles
		for t := 0; t < min(rules.MaxOnlyTriples+1, totalGames-d) && combinations <= maxCombinations; t++ {
			if rules.Allows(d, t) {
				if gap := maxCombinations - combinations; bestGap < 0 || gap < bestGap {
					bestGap = gap
					bestDoubles, bestTriples = d, t
				}
			}
			combinations = mulSaturating(combinations, 3)
		}
		doubles = mulSaturating(doubles, 2)
	}

	return assignHedges(totalGames, bestDoubles, bestTriples, rng), nil
}

func assignHedges(totalGames, doubles, triples int, rng Rand) Selections {
	order := make([]int, totalGames)
	for i := range order {
		order[i] = i + 1
	}
	for i := len(order) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		order[i], order[j] = order[j], order[i]
	}

	selections := make(Selections, totalGames)
	for pos, game := range order {
		var picks Picks
		switch {
		case pos < doubles:
			picks = drawDistinct(rng, 2)
		case pos < doubles+triples:
			picks = NewPicks(Outcomes...)
		default:
			picks = Picks{Outcomes[rng.IntN(len(Outcomes))]}
		}
		selections[GameKey(game)] = picks
	}
	return selections
}
