package jackpot

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"jackpotsim/internal/betting"
)

// memStore keeps everything in maps. It stands in for Postgres in unit tests.
type memStore struct {
	mu          sync.Mutex
	jackpots    map[string]*Jackpot
	order       []string
	simulations map[string]*SimulationDetail
	failSave    error
}

func newMemStore() *memStore {
	return &memStore{
		jackpots:    make(map[string]*Jackpot),
		simulations: make(map[string]*SimulationDetail),
	}
}

func (m *memStore) CreateJackpot(ctx context.Context, jp *Jackpot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if jp.ID == "" {
		jp.ID = "jp-" + string(rune('a'+len(m.order)))
	}
	cp := *jp
	m.jackpots[jp.ID] = &cp
	m.order = append(m.order, jp.ID)
	return nil
}

func (m *memStore) GetJackpot(ctx context.Context, id string) (*Jackpot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	jp, ok := m.jackpots[id]
	if !ok {
		return nil, ErrJackpotNotFound
	}
	cp := *jp
	return &cp, nil
}

func (m *memStore) LatestJackpot(ctx context.Context) (*Jackpot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.order) == 0 {
		return nil, ErrJackpotNotFound
	}
	cp := *m.jackpots[m.order[len(m.order)-1]]
	return &cp, nil
}

func (m *memStore) SaveSimulation(ctx context.Context, sim *Simulation, spec *Specification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSave != nil {
		return m.failSave
	}
	m.simulations[sim.ID] = &SimulationDetail{Simulation: *sim, Specification: spec}
	return nil
}

func (m *memStore) GetSimulation(ctx context.Context, id string) (*SimulationDetail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.simulations[id]
	if !ok {
		return nil, ErrSimulationNotFound
	}
	return d, nil
}

func newTestService(t *testing.T) (*Service, *memStore, *Jackpot) {
	t.Helper()
	store := newMemStore()
	svc := NewService(store, nil, nil, betting.DefaultRules())
	jp := &Jackpot{ID: "mega-1", Name: "Mega Jackpot"}
	if err := svc.CreateJackpot(context.Background(), jp); err != nil {
		t.Fatalf("CreateJackpot: %v", err)
	}
	return svc, store, jp
}

func hedged(doubles, triples int) betting.Selections {
	sel := betting.NewSelections(17)
	for i := 1; i <= doubles; i++ {
		sel[betting.GameKey(i)] = betting.Picks{betting.Home, betting.Draw}
	}
	for i := doubles + 1; i <= doubles+triples; i++ {
		sel[betting.GameKey(i)] = betting.Picks{betting.Home, betting.Away, betting.Draw}
	}
	return sel
}

func TestService_CreateJackpot(t *testing.T) {
	svc, _, jp := newTestService(t)

	if jp.TotalMatches != DefaultTotalMatches {
		t.Errorf("TotalMatches = %d, want %d", jp.TotalMatches, DefaultTotalMatches)
	}
	if jp.Status != "open" || jp.Currency != "KSh" {
		t.Errorf("unexpected defaults: %+v", jp)
	}

	bad := &Jackpot{ID: "bad", TotalMatches: 3, Fixtures: []Fixture{{Order: 4}}}
	if err := svc.CreateJackpot(context.Background(), bad); !errors.Is(err, ErrBadRequest) {
		t.Errorf("expected ErrBadRequest, got %v", err)
	}

	dup := &Jackpot{ID: "dup", TotalMatches: 3, Fixtures: []Fixture{{Order: 2}, {Order: 2}}}
	if err := svc.CreateJackpot(context.Background(), dup); !errors.Is(err, ErrBadRequest) {
		t.Errorf("expected ErrBadRequest for duplicate order, got %v", err)
	}

	latest, err := svc.LatestJackpot(context.Background())
	if err != nil || latest.ID != jp.ID {
		t.Errorf("LatestJackpot = %v, %v", latest, err)
	}
}

func TestService_ValidateSelections(t *testing.T) {
	svc, _, jp := newTestService(t)
	ctx := context.Background()

	t.Run("valid slip", func(t *testing.T) {
		res, err := svc.ValidateSelections(ctx, jp.ID, hedged(2, 5))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !res.IsValid || res.TotalCombinations != 972 {
			t.Errorf("got %+v", res)
		}
	})

	t.Run("game outside jackpot", func(t *testing.T) {
		sel := betting.Selections{"18": {betting.Home}}
		_, err := svc.ValidateSelections(ctx, jp.ID, sel)
		var inputErr *betting.InvalidInputError
		if !errors.As(err, &inputErr) {
			t.Errorf("expected InvalidInputError, got %v", err)
		}
	})

	t.Run("unknown jackpot", func(t *testing.T) {
		_, err := svc.ValidateSelections(ctx, "missing", hedged(0, 0))
		if !errors.Is(err, ErrJackpotNotFound) {
			t.Errorf("expected ErrJackpotNotFound, got %v", err)
		}
	})
}

func TestService_Toggle(t *testing.T) {
	svc, _, _ := newTestService(t)

	next, res, err := svc.Toggle(ToggleRequest{
		GameSelections: hedged(10, 0),
		Game:           "11",
		Outcome:        betting.Draw,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(next["11"]) != 2 || res.IsValid {
		t.Errorf("expected an invalid 11-double slip, got %+v", res)
	}

	if svc.WouldBeValid(ToggleRequest{GameSelections: hedged(10, 0), Game: "11", Outcome: betting.Draw}) {
		t.Error("an eleventh double should be blocked")
	}
}

func TestService_Generate(t *testing.T) {
	svc, _, jp := newTestService(t)
	ctx := context.Background()

	for _, m := range []Method{MethodDefault, MethodRandom, MethodSmart} {
		t.Run(string(m), func(t *testing.T) {
			slip, err := svc.Generate(ctx, jp.ID, GenerateRequest{Method: m, ClientSeed: "player"})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(slip.Selections) != 17 {
				t.Errorf("got %d games, want 17", len(slip.Selections))
			}
			// random repairs only against the single-kind caps, so it may return a mixed
			// slip over the combining caps
			if m != MethodRandom && !slip.Validation.IsValid {
				t.Errorf("generated slip is invalid: %v", slip.Validation.Errors)
			}
			if m.Seeded() != (slip.Seeds != nil) {
				t.Errorf("seeds present = %v for %s", slip.Seeds != nil, m)
			}
		})
	}

	t.Run("budget", func(t *testing.T) {
		slip, err := svc.Generate(ctx, jp.ID, GenerateRequest{Method: MethodBudget, BudgetKsh: 99000})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if slip.Validation.TotalCost > 99000 {
			t.Errorf("cost %d exceeds budget", slip.Validation.TotalCost)
		}
	})

	t.Run("unknown method", func(t *testing.T) {
		_, err := svc.Generate(ctx, jp.ID, GenerateRequest{Method: "lucky"})
		if !errors.Is(err, ErrUnknownMethod) {
			t.Errorf("expected ErrUnknownMethod, got %v", err)
		}
	})

	t.Run("slips need redis to be fetched", func(t *testing.T) {
		if _, err := svc.GetSlip(ctx, "anything"); !errors.Is(err, ErrSlipNotFound) {
			t.Errorf("expected ErrSlipNotFound, got %v", err)
		}
	})
}

func TestService_VerifySlip(t *testing.T) {
	svc, _, jp := newTestService(t)
	ctx := context.Background()

	slip, err := svc.Generate(ctx, jp.ID, GenerateRequest{Method: MethodRandom, ClientSeed: "player"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	req := VerifyRequest{
		JackpotID:      jp.ID,
		Method:         MethodRandom,
		ServerSeed:     slip.Seeds.ServerSeed,
		ClientSeed:     slip.Seeds.ClientSeed,
		Nonce:          slip.Seeds.Nonce,
		GameSelections: slip.Selections,
	}
	resp, err := svc.VerifySlip(ctx, req)
	if err != nil {
		t.Fatalf("VerifySlip: %v", err)
	}
	if !resp.Verified {
		t.Error("slip should verify")
	}
	if resp.Commitment != slip.Seeds.Commitment {
		t.Error("commitment should match the published one")
	}

	req.Nonce++
	if resp, _ := svc.VerifySlip(ctx, req); resp.Verified {
		t.Error("wrong nonce should not verify")
	}

	req.Method = MethodSmart
	if _, err := svc.VerifySlip(ctx, req); !errors.Is(err, ErrBadRequest) {
		t.Errorf("expected ErrBadRequest for unseeded method, got %v", err)
	}
}

func TestService_CreateSimulation(t *testing.T) {
	ctx := context.Background()

	t.Run("from selections", func(t *testing.T) {
		svc, store, jp := newTestService(t)
		detail, err := svc.CreateSimulation(ctx, CreateSimulationRequest{
			JackpotID:      jp.ID,
			GameSelections: hedged(2, 5),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if detail.EffectiveCombinations != 972 || detail.TotalCost != 96228 {
			t.Errorf("got %d combinations, cost %d", detail.EffectiveCombinations, detail.TotalCost)
		}
		if detail.CombinationType != betting.Mixed {
			t.Errorf("CombinationType = %s", detail.CombinationType)
		}
		if got := detail.Specification.DoubleGames; len(got) != 2 || got[0] != 1 || got[1] != 2 {
			t.Errorf("DoubleGames = %v", got)
		}
		if got := detail.Specification.TripleGames; len(got) != 5 || got[0] != 3 {
			t.Errorf("TripleGames = %v", got)
		}
		if !strings.HasSuffix(detail.Name, "-MEGA-972") {
			t.Errorf("Name = %s", detail.Name)
		}

		saved, err := svc.GetSimulation(ctx, detail.ID)
		if err != nil || saved.ID != detail.ID {
			t.Errorf("GetSimulation = %v, %v", saved, err)
		}
		if len(store.simulations) != 1 {
			t.Errorf("store has %d simulations", len(store.simulations))
		}
	})

	t.Run("from budget", func(t *testing.T) {
		svc, _, jp := newTestService(t)
		budget := int64(99000)
		detail, err := svc.CreateSimulation(ctx, CreateSimulationRequest{JackpotID: jp.ID, BudgetKsh: &budget})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if detail.TotalCost > budget {
			t.Errorf("cost %d exceeds budget", detail.TotalCost)
		}
	})

	t.Run("budget too low", func(t *testing.T) {
		svc, _, jp := newTestService(t)
		budget := int64(50)
		_, err := svc.CreateSimulation(ctx, CreateSimulationRequest{JackpotID: jp.ID, BudgetKsh: &budget})
		if !errors.Is(err, betting.ErrBudgetTooLow) {
			t.Errorf("expected ErrBudgetTooLow, got %v", err)
		}
	})

	t.Run("rules violation", func(t *testing.T) {
		svc, _, jp := newTestService(t)
		_, err := svc.CreateSimulation(ctx, CreateSimulationRequest{
			JackpotID:      jp.ID,
			GameSelections: hedged(11, 0),
		})
		if !errors.Is(err, ErrRulesViolated) {
			t.Errorf("expected ErrRulesViolated, got %v", err)
		}
	})

	t.Run("needs exactly one source", func(t *testing.T) {
		svc, _, jp := newTestService(t)
		budget := int64(1000)
		for _, req := range []CreateSimulationRequest{
			{JackpotID: jp.ID},
			{JackpotID: jp.ID, BudgetKsh: &budget, GameSelections: hedged(1, 0)},
			{GameSelections: hedged(1, 0)},
		} {
			if _, err := svc.CreateSimulation(ctx, req); !errors.Is(err, ErrBadRequest) {
				t.Errorf("expected ErrBadRequest, got %v", err)
			}
		}
	})

	t.Run("store failure", func(t *testing.T) {
		svc, store, jp := newTestService(t)
		store.failSave = errors.New("connection refused")
		_, err := svc.CreateSimulation(ctx, CreateSimulationRequest{JackpotID: jp.ID, GameSelections: hedged(1, 0)})
		if err == nil || errors.Is(err, ErrBadRequest) {
			t.Errorf("expected a store error, got %v", err)
		}
	})
}

func TestSimulationName(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		shortID      int
		combinations int64
		want         string
	}{
		{42, 972, "SIM042-2025-06-01-MEGA-972"},
		{7, 1536, "SIM007-2025-06-01-MEGA-1.536K"},
		{123, 1000, "SIM123-2025-06-01-MEGA-1K"},
	}
	for _, tt := range tests {
		if got := SimulationName(now, tt.shortID, tt.combinations); got != tt.want {
			t.Errorf("SimulationName(%d, %d) = %s, want %s", tt.shortID, tt.combinations, got, tt.want)
		}
	}
}
