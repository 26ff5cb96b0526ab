package betting

// Toggle adds or removes outcome for game and returns a new slip; the input is not
// modified. A game whose last outcome is removed falls back to {"1"}.
func Toggle(selections Selections, game string, outcome Outcome) (Selections, error) {
	if !outcome.Valid() {
		return nil, invalidInput(game, "unknown outcome %q", outcome)
	}
	next := selections.Clone()
	next[game] = selections[game].Toggle(outcome)
	return next, nil
}

// WouldBeValid previews Toggle with the same validator used for the real slip.
// Removing the last outcome is always allowed because the slip then falls back to a single.
func WouldBeValid(selections Selections, game string, outcome Outcome, rules Rules) bool {
	if !outcome.Valid() {
		return false
	}
	current := selections[game]
	var picks Picks
	if current.Has(outcome) {
		picks = current.Without(outcome)
	} else {
		picks = current.With(outcome)
	}
	if len(picks) == 0 {
		return true
	}

	next := selections.Clone()
	next[game] = picks
	res, err := Validate(next, rules)
	if err != nil {
		return false
	}
	return res.IsValid
}
