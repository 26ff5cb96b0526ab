package betting

import (
	"math"
	"strconv"
)

type CombinationType string

const (
	Singles CombinationType = "singles"
	Doubles CombinationType = "doubles"
	Triples CombinationType = "triples"
	Mixed   CombinationType = "mixed"
)

// Result is recomputed from scratch on every change to a slip.
type Result struct {
	IsValid           bool            `json:"is_valid"`
	TotalCombinations int64           `json:"total_combinations"`
	TotalCost         int64           `json:"total_cost"`
	ErrorMessage      string          `json:"error_message,omitempty"`
	Errors            []string        `json:"errors"`
	CombinationType   CombinationType `json:"combination_type"`
	DoubleCount       int             `json:"double_count"`
	TripleCount       int             `json:"triple_count"`
	GameSelections    Selections      `json:"game_selections"`
}

// Validate counts doubles and triples, multiplies the pick set sizes and checks the
// counts against the rule table. Rule violations are reported in the result; the
// error is non-nil only for malformed input and is always an *InvalidInputError.
// An empty slip has one combination.
func Validate(selections Selections, rules Rules) (Result, error) {
	if err := checkSelections(selections); err != nil {
		return Result{}, err
	}

	doubles, triples := tally(selections)
	total := int64(1)
	for _, picks := range selections {
		total = mulSaturating(total, int64(len(picks)))
	}

	errs := rules.violations(doubles, triples)
	res := Result{
		IsValid:           len(errs) == 0,
		TotalCombinations: total,
		TotalCost:         mulSaturating(total, rules.CostPerBet),
		Errors:            make([]string, 0, len(errs)),
		CombinationType:   classify(doubles, triples),
		DoubleCount:       doubles,
		TripleCount:       triples,
		GameSelections:    selections,
	}
	res.Errors = append(res.Errors, errs...)
	if len(errs) > 0 {
		res.ErrorMessage = errs[0]
	}
	return res, nil
}

// CheckRange rejects game numbers outside [1, totalGames].
func CheckRange(selections Selections, totalGames int) error {
	for game := range selections {
		n, err := strconv.Atoi(game)
		if err != nil || n < 1 || n > totalGames {
			return invalidInput(game, "game number must be between 1 and %d", totalGames)
		}
	}
	return nil
}

func tally(selections Selections) (doubles, triples int) {
	for _, picks := range selections {
		switch len(picks) {
		case 2:
			doubles++
		case 3:
			triples++
		}
	}
	return doubles, triples
}

func classify(doubles, triples int) CombinationType {
	switch {
	case doubles > 0 && triples > 0:
		return Mixed
	case doubles > 0:
		return Doubles
	case triples > 0:
		return Triples
	}
	return Singles
}

func checkSelections(selections Selections) error {
	for game, picks := range selections {
		if n, err := strconv.Atoi(game); err != nil || n < 1 {
			return invalidInput(game, "game number must be a positive integer")
		}
		if len(picks) == 0 {
			return invalidInput(game, "at least one outcome is required")
		}
		if len(picks) > len(Outcomes) {
			return invalidInput(game, "at most %d outcomes are allowed, got %d", len(Outcomes), len(picks))
		}
		seen := make(map[Outcome]bool, len(picks))
		for _, o := range picks {
			if !o.Valid() {
				return invalidInput(game, "unknown outcome %q", o)
			}
			if seen[o] {
				return invalidInput(game, "duplicate outcome %q", o)
			}
			seen[o] = true
		}
	}
	return nil
}

func mulSaturating(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	if a > math.MaxInt64/b {
		return math.MaxInt64
	}
	return a * b
}
