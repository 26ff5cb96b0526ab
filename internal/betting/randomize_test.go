package betting

import (
	"math/rand/v2"
	"reflect"
	"testing"
)

// scriptedRand replays fixed draws so generator paths can be forced.
type scriptedRand struct {
	draws []int
	pos   int
}

func (s *scriptedRand) IntN(n int) int {
	v := s.draws[s.pos%len(s.draws)]
	s.pos++
	return v % n
}

func TestRandomize(t *testing.T) {
	rules := DefaultRules()

	t.Run("every game gets one to three distinct outcomes", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(1, 2))
		for i := 0; i < 100; i++ {
			s := Randomize(17, rng, rules)
			if len(s) != 17 {
				t.Fatalf("got %d games, want 17", len(s))
			}
			if _, err := Validate(s, rules); err != nil {
				t.Fatalf("randomizer produced malformed slip: %v", err)
			}
		}
	})

	t.Run("result respects the only caps", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(3, 4))
		for i := 0; i < 100; i++ {
			doubles, triples := tally(Randomize(17, rng, rules))
			if doubles > rules.MaxOnlyDoubles || triples > rules.MaxOnlyTriples {
				t.Fatalf("got %d doubles and %d triples", doubles, triples)
			}
		}
	})

	t.Run("same seed gives the same slip", func(t *testing.T) {
		a := Randomize(17, rand.New(rand.NewPCG(9, 9)), rules)
		b := Randomize(17, rand.New(rand.NewPCG(9, 9)), rules)
		if !reflect.DeepEqual(a, b) {
			t.Error("Randomize should be reproducible for a fixed source")
		}
	})

	t.Run("eleven doubles collapse every game", func(t *testing.T) {
		var draws []int
		for i := 0; i < 11; i++ {
			// size 2, then "1", then "X" from the remaining [X 2]
			draws = append(draws, 1, 0, 0)
		}
		for i := 0; i < 11; i++ {
			draws = append(draws, 2)
		}
		s := Randomize(11, &scriptedRand{draws: draws}, rules)

		for _, game := range s.Games() {
			if !reflect.DeepEqual(s[game], Picks{Away}) {
				t.Errorf("game %s = %v, want [2]", game, s[game])
			}
		}
	})

	t.Run("ten doubles are kept", func(t *testing.T) {
		var draws []int
		for i := 0; i < 10; i++ {
			draws = append(draws, 1, 0, 0)
		}
		s := Randomize(10, &scriptedRand{draws: draws}, rules)
		for _, game := range s.Games() {
			if !reflect.DeepEqual(s[game], Picks{Home, Draw}) {
				t.Errorf("game %s = %v, want [1 X]", game, s[game])
			}
		}
	})

	t.Run("mixed draw is checked against only caps", func(t *testing.T) {
		// 10 doubles and 5 triples pass the only caps even though the mix
		// breaks the combining doubles cap.
		var draws []int
		for i := 0; i < 10; i++ {
			draws = append(draws, 1, 0, 0)
		}
		for i := 0; i < 5; i++ {
			draws = append(draws, 2, 0, 0, 0)
		}
		s := Randomize(15, &scriptedRand{draws: draws}, rules)
		doubles, triples := tally(s)
		if doubles != 10 || triples != 5 {
			t.Errorf("got %d doubles and %d triples, want 10 and 5", doubles, triples)
		}
	})
}
