package betting

import (
	"reflect"
	"testing"
)

func TestSmartSelect_PerGame(t *testing.T) {
	tests := []struct {
		name string
		odds Odds
		want Picks
	}{
		{"two shortest prices when one is long", Odds{Home: 1.5, Draw: 4.0, Away: 5.0}, Picks{Home, Draw}},
		{"all prices long gives a triple", Odds{Home: 2.6, Draw: 3.1, Away: 2.8}, Picks{Home, Away, Draw}},
		{"clear favourite away", Odds{Home: 2.9, Draw: 2.8, Away: 1.4}, Picks{Away}},
		{"clear favourite draw", Odds{Home: 2.9, Draw: 2.1, Away: 2.4}, Picks{Draw}},
		{"tied favourite prefers home", Odds{Home: 2.2, Draw: 2.2, Away: 2.9}, Picks{Home}},
		{"missing prices use defaults", Odds{}, Picks{Home}},
		{"away and draw shortest", Odds{Home: 4.5, Draw: 3.2, Away: 1.8}, Picks{Away, Draw}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SmartSelect([]Odds{tt.odds}, DefaultRules())
			if !reflect.DeepEqual(got["1"], tt.want) {
				t.Errorf("SmartSelect() = %v, want %v", got["1"], tt.want)
			}
		})
	}
}

func TestSmartSelect_Repair(t *testing.T) {
	rules := DefaultRules()

	t.Run("highest mean odds are trimmed first", func(t *testing.T) {
		games := make([]Odds, 7)
		for i := range games {
			games[i] = Odds{Home: 2.6 + 0.1*float64(i), Draw: 2.6, Away: 3.0}
		}
		s := SmartSelect(games, rules)

		for i := 1; i <= 5; i++ {
			if len(s[GameKey(i)]) != 3 {
				t.Errorf("game %d = %v, want triple", i, s[GameKey(i)])
			}
		}
		for _, game := range []string{"6", "7"} {
			if !reflect.DeepEqual(s[game], Picks{Draw}) {
				t.Errorf("game %s = %v, want [X]", game, s[game])
			}
		}
	})

	t.Run("within combining caps nothing changes", func(t *testing.T) {
		games := []Odds{{Home: 3, Draw: 3, Away: 3}, {Home: 1.5, Draw: 4, Away: 6}}
		s := SmartSelect(games, rules)
		if len(s["1"]) != 3 || len(s["2"]) != 2 {
			t.Errorf("got %v, want a triple and a double", s)
		}
	})

	t.Run("collapse tie prefers the draw", func(t *testing.T) {
		tight := rules
		tight.MaxCombiningTriples = 0
		s := SmartSelect([]Odds{{Home: 2.7, Draw: 2.7, Away: 2.7}}, tight)
		if !reflect.DeepEqual(s["1"], Picks{Draw}) {
			t.Errorf("got %v, want [X]", s["1"])
		}
	})

	t.Run("repair walks doubles ranked above triples", func(t *testing.T) {
		tight := rules
		tight.MaxCombiningTriples = 1
		games := []Odds{
			{Home: 2.6, Draw: 2.6, Away: 2.6}, // triple, mean 2.6
			{Home: 2.6, Draw: 2.7, Away: 2.8}, // triple, mean 2.7
			{Home: 1.2, Draw: 9.0, Away: 9.0}, // double, mean 6.4
		}
		s := SmartSelect(games, tight)
		if !reflect.DeepEqual(s["3"], Picks{Home}) {
			t.Errorf("game 3 = %v, want [1]", s["3"])
		}
		if !reflect.DeepEqual(s["2"], Picks{Home}) {
			t.Errorf("game 2 = %v, want [1]", s["2"])
		}
		if len(s["1"]) != 3 {
			t.Errorf("game 1 = %v, want triple", s["1"])
		}
	})
}
