package jackpot

import (
	"context"

	"jackpotsim/internal/betting"
)

// DefaultGenerator backs the home side on every game, the dashboard's starting slip.
type DefaultGenerator struct{}

func NewDefaultGenerator() *DefaultGenerator {
	return &DefaultGenerator{}
}

func (g *DefaultGenerator) Method() Method {
	return MethodDefault
}

func (g *DefaultGenerator) Generate(ctx context.Context, jp *Jackpot, req GenerateRequest) (betting.Selections, error) {
	return betting.NewSelections(jp.TotalMatches), nil
}

// RandomGenerator draws a slip from the request seeds.
type RandomGenerator struct {
	rules betting.Rules
}

func NewRandomGenerator(rules betting.Rules) *RandomGenerator {
	return &RandomGenerator{rules: rules}
}

func (g *RandomGenerator) Method() Method {
	return MethodRandom
}

func (g *RandomGenerator) Generate(ctx context.Context, jp *Jackpot, req GenerateRequest) (betting.Selections, error) {
	rng := SeededRand(req.ServerSeed, req.ClientSeed, req.Nonce)
	return betting.Randomize(jp.TotalMatches, rng, g.rules), nil
}

// SmartGenerator picks from the fixture odds.
type SmartGenerator struct {
	rules betting.Rules
}

func NewSmartGenerator(rules betting.Rules) *SmartGenerator {
	return &SmartGenerator{rules: rules}
}

func (g *SmartGenerator) Method() Method {
	return MethodSmart
}

func (g *SmartGenerator) Generate(ctx context.Context, jp *Jackpot, req GenerateRequest) (betting.Selections, error) {
	return betting.SmartSelect(jp.Odds(), g.rules), nil
}

// BudgetGenerator spends a budget on the closest legal doubles/triples split.
type BudgetGenerator struct {
	rules betting.Rules
}

func NewBudgetGenerator(rules betting.Rules) *BudgetGenerator {
	return &BudgetGenerator{rules: rules}
}

func (g *BudgetGenerator) Method() Method {
	return MethodBudget
}

func (g *BudgetGenerator) Generate(ctx context.Context, jp *Jackpot, req GenerateRequest) (betting.Selections, error) {
	rng := SeededRand(req.ServerSeed, req.ClientSeed, req.Nonce)
	return betting.PlanBudget(req.BudgetKsh, jp.TotalMatches, rng, g.rules)
}
