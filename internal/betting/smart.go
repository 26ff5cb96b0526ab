package betting

import (
	"cmp"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	defaultHomeOdds = 2.0
	defaultDrawOdds = 3.0
	defaultAwayOdds = 2.0

	tripleMinOdds = 2.5
	doubleMaxOdds = 3.0
)

// Odds are decimal 1X2 odds for a fixture. Zero means the bookmaker price is missing.
type Odds struct {
	Home float64 `json:"home"`
	Draw float64 `json:"draw"`
	Away float64 `json:"away"`
}

// withDefaults fills missing prices with 2.0 / 3.0 / 2.0.
func (o Odds) withDefaults() Odds {
	if o.Home == 0 {
		o.Home = defaultHomeOdds
	}
	if o.Draw == 0 {
		o.Draw = defaultDrawOdds
	}
	if o.Away == 0 {
		o.Away = defaultAwayOdds
	}
	return o
}

func (o Odds) values() []float64 {
	return []float64{o.Home, o.Draw, o.Away}
}

type pricedOutcome struct {
	outcome Outcome
	odds    float64
}

// SmartSelect hedges uncertain games and backs clear favourites: all three outcomes
// when every price is above 2.5, the two shortest prices when one price is above 3.0,
// otherwise the favourite alone. Over-budget slips are trimmed with the combining caps,
// starting from the games with the highest mean odds.
func SmartSelect(games []Odds, rules Rules) Selections {
	selections := make(Selections, len(games))
	for i, raw := range games {
		selections[GameKey(i+1)] = smartPicks(raw.withDefaults())
	}

	doubles, triples := tally(selections)
	if doubles <= rules.MaxCombiningDoubles && triples <= rules.MaxCombiningTriples {
		return selections
	}

	type ranked struct {
		game int
		mean float64
	}
	var multi []ranked
	for i, raw := range games {
		if len(selections[GameKey(i+1)]) > 1 {
			multi = append(multi, ranked{game: i + 1, mean: stat.Mean(raw.withDefaults().values(), nil)})
		}
	}
	slices.SortStableFunc(multi, func(a, b ranked) int {
		return cmp.Compare(b.mean, a.mean)
	})

	for _, r := range multi {
		if doubles <= rules.MaxCombiningDoubles && triples <= rules.MaxCombiningTriples {
			break
		}
		key := GameKey(r.game)
		switch len(selections[key]) {
		case 3:
			triples--
		case 2:
			doubles--
		}
		selections[key] = Picks{collapsePick(games[r.game-1].withDefaults())}
	}
	return selections
}

func smartPicks(o Odds) Picks {
	values := o.values()
	switch {
	case floats.Min(values) > tripleMinOdds:
		return NewPicks(Home, Draw, Away)
	case floats.Max(values) > doubleMaxOdds:
		priced := []pricedOutcome{{Home, o.Home}, {Draw, o.Draw}, {Away, o.Away}}
		slices.SortStableFunc(priced, func(a, b pricedOutcome) int {
			return cmp.Compare(a.odds, b.odds)
		})
		return NewPicks(priced[0].outcome, priced[1].outcome)
	case o.Home <= o.Draw && o.Home <= o.Away:
		return Picks{Home}
	case o.Draw <= o.Home && o.Draw <= o.Away:
		return Picks{Draw}
	}
	return Picks{Away}
}

// collapsePick is the favourite used when trimming a hedged game. Ties prefer the draw,
// then the away side.
func collapsePick(o Odds) Outcome {
	switch {
	case o.Draw <= o.Home && o.Draw <= o.Away:
		return Draw
	case o.Away <= o.Home && o.Away <= o.Draw:
		return Away
	}
	return Home
}
