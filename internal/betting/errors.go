package betting

import (
	"errors"
	"fmt"
)

var ErrBudgetTooLow = errors.New("budget too low")

// InvalidInputError reports a slip that no dashboard could have produced:
// a bad game number or a pick set that is not a subset of {"1","X","2"}.
type InvalidInputError struct {
	Game   string
	Reason string
}

func (e *InvalidInputError) Error() string {
	if e.Game == "" {
		return "invalid selections: " + e.Reason
	}
	return fmt.Sprintf("invalid selections for game %q: %s", e.Game, e.Reason)
}

func invalidInput(game, format string, args ...any) error {
	return &InvalidInputError{Game: game, Reason: fmt.Sprintf(format, args...)}
}
