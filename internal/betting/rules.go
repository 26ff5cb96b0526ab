package betting

import (
	"errors"
	"fmt"
)

// Rules holds the SportPesa combinatorial caps and the price of one bet line.
// The same value is shared by the validator, the toggle preview and every generator.
type Rules struct {
	MaxOnlyDoubles      int   `json:"maxOnlyDoubles" yaml:"max_only_doubles"`
	MaxOnlyTriples      int   `json:"maxOnlyTriples" yaml:"max_only_triples"`
	MaxCombiningDoubles int   `json:"maxCombiningDoubles" yaml:"max_combining_doubles"`
	MaxCombiningTriples int   `json:"maxCombiningTriples" yaml:"max_combining_triples"`
	CostPerBet          int64 `json:"costPerBet" yaml:"cost_per_bet"`
}

// DefaultRules returns the mega jackpot rule table.
func DefaultRules() Rules {
	return Rules{
		MaxOnlyDoubles:      10,
		MaxOnlyTriples:      5,
		MaxCombiningDoubles: 9,
		MaxCombiningTriples: 5,
		CostPerBet:          99,
	}
}

// Check reports whether the rule table itself is usable.
func (r Rules) Check() error {
	if r.MaxOnlyDoubles < 0 || r.MaxOnlyTriples < 0 || r.MaxCombiningDoubles < 0 || r.MaxCombiningTriples < 0 {
		return errors.New("rule limits must not be negative")
	}
	if r.CostPerBet <= 0 {
		return fmt.Errorf("cost per bet must be positive, got %d", r.CostPerBet)
	}
	return nil
}

// Allows reports whether a slip with the given number of doubles and triples is legal.
func (r Rules) Allows(doubles, triples int) bool {
	return len(r.violations(doubles, triples)) == 0
}

// violations evaluates the rule table in precedence order: mixed, doubles only, triples only.
func (r Rules) violations(doubles, triples int) []string {
	var errs []string
	switch {
	case doubles > 0 && triples > 0:
		if doubles > r.MaxCombiningDoubles {
			errs = append(errs, fmt.Sprintf("Maximum %d doubles allowed when combining with triples", r.MaxCombiningDoubles))
		}
		if triples > r.MaxCombiningTriples {
			errs = append(errs, fmt.Sprintf("Maximum %d triples allowed when combining with doubles", r.MaxCombiningTriples))
		}
	case doubles > 0:
		if doubles > r.MaxOnlyDoubles {
			errs = append(errs, fmt.Sprintf("Maximum %d doubles allowed when not using triples", r.MaxOnlyDoubles))
		}
	case triples > 0:
		if triples > r.MaxOnlyTriples {
			errs = append(errs, fmt.Sprintf("Maximum %d triples allowed when not using doubles", r.MaxOnlyTriples))
		}
	}
	return errs
}
