package jackpot

import (
	"time"

	"jackpotsim/internal/betting"
)

const DefaultTotalMatches = 17

type Jackpot struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	TotalMatches int       `json:"total_matches"`
	Status       string    `json:"status"`
	Currency     string    `json:"currency"`
	Fixtures     []Fixture `json:"games"`
	CreatedAt    time.Time `json:"created_at"`
}

type Fixture struct {
	Order    int          `json:"game_order"`
	HomeTeam string       `json:"home_team"`
	AwayTeam string       `json:"away_team"`
	Odds     betting.Odds `json:"odds"`
}

// Odds returns one price triple per game, indexed by game number - 1. Games without a
// fixture get zero odds, which the smart generator treats as missing.
func (j *Jackpot) Odds() []betting.Odds {
	odds := make([]betting.Odds, j.TotalMatches)
	for _, f := range j.Fixtures {
		if f.Order >= 1 && f.Order <= j.TotalMatches {
			odds[f.Order-1] = f.Odds
		}
	}
	return odds
}

type Simulation struct {
	ID                    string                  `json:"id"`
	Name                  string                  `json:"name"`
	JackpotID             string                  `json:"jackpot_id"`
	CombinationType       betting.CombinationType `json:"combination_type"`
	DoubleCount           int                     `json:"double_count"`
	TripleCount           int                     `json:"triple_count"`
	EffectiveCombinations int64                   `json:"effective_combinations"`
	TotalCost             int64                   `json:"total_cost"`
	Status                string                  `json:"status"`
	CreatedAt             time.Time               `json:"created_at"`
	CompletedAt           *time.Time              `json:"completed_at"`
}

// Specification is the compact form of a slip: enough to enumerate every combination
// later without storing them.
type Specification struct {
	ID                string                  `json:"id"`
	SimulationID      string                  `json:"simulation_id"`
	GameSelections    betting.Selections      `json:"game_selections"`
	CombinationType   betting.CombinationType `json:"combination_type"`
	DoubleGames       []int                   `json:"double_games"`
	TripleGames       []int                   `json:"triple_games"`
	TotalCombinations int64                   `json:"total_combinations"`
	TotalCost         int64                   `json:"total_cost"`
	CreatedAt         time.Time               `json:"created_at"`
}

type SimulationDetail struct {
	Simulation
	Specification *Specification `json:"specification,omitempty"`
}

// Slip is a generated selection set kept in Redis so its seeds can be revealed later.
type Slip struct {
	ID         string             `json:"id"`
	JackpotID  string             `json:"jackpot_id"`
	Method     Method             `json:"method"`
	Selections betting.Selections `json:"game_selections"`
	Validation betting.Result     `json:"validation"`
	Seeds      *Seeds             `json:"seeds,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
}

type ValidateRequest struct {
	GameSelections betting.Selections `json:"game_selections"`
}

type ToggleRequest struct {
	GameSelections betting.Selections `json:"game_selections"`
	Game           string             `json:"game"`
	Outcome        betting.Outcome    `json:"outcome"`
}

type CreateSimulationRequest struct {
	Name           string             `json:"name"`
	JackpotID      string             `json:"jackpot_id"`
	BudgetKsh      *int64             `json:"budget_ksh,omitempty"`
	GameSelections betting.Selections `json:"game_selections,omitempty"`
}

type GenerateRequest struct {
	Method     Method `json:"method"`
	BudgetKsh  int64  `json:"budget_ksh,omitempty"`
	ClientSeed string `json:"client_seed,omitempty"`

	ServerSeed string `json:"-"`
	Nonce      int64  `json:"-"`
}

type GenerateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Slip    *Slip  `json:"slip,omitempty"`
}

type VerifyRequest struct {
	JackpotID      string             `json:"jackpot_id"`
	Method         Method             `json:"method"`
	BudgetKsh      int64              `json:"budget_ksh,omitempty"`
	ServerSeed     string             `json:"server_seed"`
	ClientSeed     string             `json:"client_seed"`
	Nonce          int64              `json:"nonce"`
	GameSelections betting.Selections `json:"game_selections"`
}

type VerifyResponse struct {
	Verified   bool   `json:"verified"`
	Commitment string `json:"commitment"`
}
