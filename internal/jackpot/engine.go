package jackpot

import (
	"context"
	"log"
	"slices"
	"sync"

	"jackpotsim/internal/betting"
)

type Method string

const (
	MethodDefault Method = "default"
	MethodRandom  Method = "random"
	MethodSmart   Method = "smart"
	MethodBudget  Method = "budget"
)

// Seeded reports whether slips from this method are reproducible from their seeds.
func (m Method) Seeded() bool {
	return m == MethodRandom || m == MethodBudget
}

// Generator builds a slip for a jackpot.
type Generator interface {
	Method() Method
	Generate(ctx context.Context, jp *Jackpot, req GenerateRequest) (betting.Selections, error)
}

type GeneratorFactory struct {
	generators map[Method]Generator
	mu         sync.RWMutex
}

func NewGeneratorFactory() *GeneratorFactory {
	return &GeneratorFactory{
		generators: make(map[Method]Generator),
	}
}

// NewDefaultFactory registers every built-in generator against one rule table.
func NewDefaultFactory(rules betting.Rules) *GeneratorFactory {
	f := NewGeneratorFactory()
	f.Register(NewDefaultGenerator())
	f.Register(NewRandomGenerator(rules))
	f.Register(NewSmartGenerator(rules))
	f.Register(NewBudgetGenerator(rules))
	return f
}

func (f *GeneratorFactory) Register(g Generator) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generators[g.Method()] = g
	log.Printf("[FACTORY] Registered %s generator", g.Method())
}

func (f *GeneratorFactory) Get(method Method) (Generator, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	g, exists := f.generators[method]
	return g, exists
}

func (f *GeneratorFactory) Methods() []Method {
	f.mu.RLock()
	defer f.mu.RUnlock()
	methods := make([]Method, 0, len(f.generators))
	for m := range f.generators {
		methods = append(methods, m)
	}
	slices.Sort(methods)
	return methods
}
