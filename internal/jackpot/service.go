package jackpot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"jackpotsim/internal/betting"
)

const (
	REDIS_KEY_JACKPOT = "jackpot:"
	REDIS_KEY_SLIP    = "slip:"

	JACKPOT_CACHE_TTL = 5 * time.Minute
	SLIP_TTL          = 1 * time.Hour

	StatusCompleted = "completed"
)

// Service owns the rule table and ties generators, storage, cache and hub together.
// The Redis client and hub are optional.
type Service struct {
	store       Store
	redisClient *redis.Client
	hub         *Hub
	rules       betting.Rules
	generators  *GeneratorFactory
	nonce       atomic.Int64
}

func NewService(store Store, redisClient *redis.Client, hub *Hub, rules betting.Rules) *Service {
	return &Service{
		store:       store,
		redisClient: redisClient,
		hub:         hub,
		rules:       rules,
		generators:  NewDefaultFactory(rules),
	}
}

func (s *Service) Rules() betting.Rules {
	return s.rules
}

func (s *Service) Methods() []Method {
	return s.generators.Methods()
}

// CreateJackpot stores a jackpot. TotalMatches defaults to the fixture count, or 17.
func (s *Service) CreateJackpot(ctx context.Context, jp *Jackpot) error {
	if jp.TotalMatches <= 0 {
		jp.TotalMatches = len(jp.Fixtures)
		if jp.TotalMatches == 0 {
			jp.TotalMatches = DefaultTotalMatches
		}
	}
	seen := make(map[int]bool, len(jp.Fixtures))
	for _, f := range jp.Fixtures {
		if f.Order < 1 || f.Order > jp.TotalMatches {
			return fmt.Errorf("%w: fixture order %d outside 1..%d", ErrBadRequest, f.Order, jp.TotalMatches)
		}
		if seen[f.Order] {
			return fmt.Errorf("%w: duplicate fixture order %d", ErrBadRequest, f.Order)
		}
		seen[f.Order] = true
	}
	if jp.Status == "" {
		jp.Status = "open"
	}
	if jp.Currency == "" {
		jp.Currency = "KSh"
	}
	if err := s.store.CreateJackpot(ctx, jp); err != nil {
		return fmt.Errorf("create jackpot: %w", err)
	}
	log.Printf("[JACKPOT] Created %s (%s, %d games)", jp.ID, jp.Name, jp.TotalMatches)
	return nil
}

func (s *Service) GetJackpot(ctx context.Context, id string) (*Jackpot, error) {
	if jp := s.cachedJackpot(ctx, id); jp != nil {
		return jp, nil
	}
	jp, err := s.store.GetJackpot(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheJackpot(ctx, jp)
	return jp, nil
}

func (s *Service) LatestJackpot(ctx context.Context) (*Jackpot, error) {
	return s.store.LatestJackpot(ctx)
}

// ValidateSelections checks game numbers against the jackpot, then applies the rules.
func (s *Service) ValidateSelections(ctx context.Context, jackpotID string, selections betting.Selections) (betting.Result, error) {
	jp, err := s.GetJackpot(ctx, jackpotID)
	if err != nil {
		return betting.Result{}, err
	}
	if err := betting.CheckRange(selections, jp.TotalMatches); err != nil {
		return betting.Result{}, err
	}
	return betting.Validate(selections, s.rules)
}

func (s *Service) Toggle(req ToggleRequest) (betting.Selections, betting.Result, error) {
	next, err := betting.Toggle(req.GameSelections, req.Game, req.Outcome)
	if err != nil {
		return nil, betting.Result{}, err
	}
	res, err := betting.Validate(next, s.rules)
	if err != nil {
		return nil, betting.Result{}, err
	}
	return next, res, nil
}

func (s *Service) WouldBeValid(req ToggleRequest) bool {
	return betting.WouldBeValid(req.GameSelections, req.Game, req.Outcome, s.rules)
}

// Generate builds a slip with the requested method and keeps it in Redis.
func (s *Service) Generate(ctx context.Context, jackpotID string, req GenerateRequest) (*Slip, error) {
	if req.Method == "" {
		req.Method = MethodDefault
	}
	generator, ok := s.generators.Get(req.Method)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, req.Method)
	}
	jp, err := s.GetJackpot(ctx, jackpotID)
	if err != nil {
		return nil, err
	}

	var seeds *Seeds
	if req.Method.Seeded() {
		if req.ClientSeed == "" {
			req.ClientSeed = GenerateSeed()
		}
		req.ServerSeed = GenerateSeed()
		req.Nonce = s.nonce.Add(1)
		seeds = &Seeds{
			ServerSeed: req.ServerSeed,
			ClientSeed: req.ClientSeed,
			Nonce:      req.Nonce,
			Commitment: HashCommitment(req.ServerSeed),
		}
	}

	selections, err := generator.Generate(ctx, jp, req)
	if err != nil {
		return nil, err
	}
	validation, err := betting.Validate(selections, s.rules)
	if err != nil {
		return nil, err
	}

	slip := &Slip{
		ID:         uuid.New().String(),
		JackpotID:  jp.ID,
		Method:     req.Method,
		Selections: selections,
		Validation: validation,
		Seeds:      seeds,
		CreatedAt:  time.Now(),
	}
	s.storeSlip(ctx, slip)

	log.Printf("[JACKPOT] %s slip %s for jackpot %s: %d combinations, cost %d",
		slip.Method, slip.ID, jp.ID, validation.TotalCombinations, validation.TotalCost)
	return slip, nil
}

func (s *Service) GetSlip(ctx context.Context, id string) (*Slip, error) {
	if s.redisClient == nil {
		return nil, ErrSlipNotFound
	}
	data, err := s.redisClient.Get(ctx, REDIS_KEY_SLIP+id).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[CACHE] Slip lookup failed: %v", err)
		}
		return nil, ErrSlipNotFound
	}
	var slip Slip
	if err := json.Unmarshal(data, &slip); err != nil {
		return nil, fmt.Errorf("decode slip %s: %w", id, err)
	}
	return &slip, nil
}

// VerifySlip regenerates a seeded slip and compares it with the claimed selections.
func (s *Service) VerifySlip(ctx context.Context, req VerifyRequest) (VerifyResponse, error) {
	if !req.Method.Seeded() {
		return VerifyResponse{}, fmt.Errorf("%w: method %q is not seeded", ErrBadRequest, req.Method)
	}
	generator, ok := s.generators.Get(req.Method)
	if !ok {
		return VerifyResponse{}, fmt.Errorf("%w: %q", ErrUnknownMethod, req.Method)
	}
	jp, err := s.GetJackpot(ctx, req.JackpotID)
	if err != nil {
		return VerifyResponse{}, err
	}

	regenerated, err := generator.Generate(ctx, jp, GenerateRequest{
		Method:     req.Method,
		BudgetKsh:  req.BudgetKsh,
		ClientSeed: req.ClientSeed,
		ServerSeed: req.ServerSeed,
		Nonce:      req.Nonce,
	})
	if err != nil {
		return VerifyResponse{}, err
	}
	return VerifyResponse{
		Verified:   reflect.DeepEqual(regenerated, req.GameSelections),
		Commitment: HashCommitment(req.ServerSeed),
	}, nil
}

// CreateSimulation turns explicit selections or a budget into a saved simulation with
// its bet specification.
func (s *Service) CreateSimulation(ctx context.Context, req CreateSimulationRequest) (*SimulationDetail, error) {
	if req.JackpotID == "" {
		return nil, fmt.Errorf("%w: jackpot_id is required", ErrBadRequest)
	}
	hasBudget := req.BudgetKsh != nil
	hasSelections := len(req.GameSelections) > 0
	if hasBudget == hasSelections {
		return nil, fmt.Errorf("%w: provide either budget_ksh or game_selections", ErrBadRequest)
	}

	jp, err := s.GetJackpot(ctx, req.JackpotID)
	if err != nil {
		return nil, err
	}

	selections := req.GameSelections
	if hasBudget {
		selections, err = betting.PlanBudget(*req.BudgetKsh, jp.TotalMatches, CryptoRand(), s.rules)
		if err != nil {
			return nil, err
		}
	} else if err := betting.CheckRange(selections, jp.TotalMatches); err != nil {
		return nil, err
	}

	res, err := betting.Validate(selections, s.rules)
	if err != nil {
		return nil, err
	}
	if !res.IsValid {
		return nil, fmt.Errorf("%w: %s", ErrRulesViolated, strings.Join(res.Errors, "; "))
	}

	now := time.Now().UTC()
	name := req.Name
	if name == "" {
		name = SimulationName(now, CryptoRand().IntN(1000), res.TotalCombinations)
	}

	sim := &Simulation{
		ID:                    uuid.New().String(),
		Name:                  name,
		JackpotID:             jp.ID,
		CombinationType:       res.CombinationType,
		DoubleCount:           res.DoubleCount,
		TripleCount:           res.TripleCount,
		EffectiveCombinations: res.TotalCombinations,
		TotalCost:             res.TotalCost,
		Status:                StatusCompleted,
		CreatedAt:             now,
		CompletedAt:           &now,
	}
	spec := NewSpecification(sim.ID, selections, res)
	spec.CreatedAt = now

	if err := s.store.SaveSimulation(ctx, sim, spec); err != nil {
		return nil, fmt.Errorf("save simulation: %w", err)
	}

	log.Printf("[JACKPOT] Created specification for simulation %s: %d combinations, cost %d KSh",
		sim.ID, spec.TotalCombinations, spec.TotalCost)

	if s.hub != nil {
		s.hub.BroadcastJackpot(sim.JackpotID, map[string]interface{}{
			"type":               "simulation_created",
			"simulation_id":      sim.ID,
			"jackpot_id":         sim.JackpotID,
			"total_combinations": sim.EffectiveCombinations,
			"total_cost":         sim.TotalCost,
		})
	}

	return &SimulationDetail{Simulation: *sim, Specification: spec}, nil
}

func (s *Service) GetSimulation(ctx context.Context, id string) (*SimulationDetail, error) {
	return s.store.GetSimulation(ctx, id)
}

// NewSpecification lists the hedged games of a validated slip in ascending order.
func NewSpecification(simulationID string, selections betting.Selections, res betting.Result) *Specification {
	spec := &Specification{
		ID:                uuid.New().String(),
		SimulationID:      simulationID,
		GameSelections:    selections,
		CombinationType:   res.CombinationType,
		DoubleGames:       []int{},
		TripleGames:       []int{},
		TotalCombinations: res.TotalCombinations,
		TotalCost:         res.TotalCost,
	}
	for game, picks := range selections {
		n, _ := strconv.Atoi(game)
		switch len(picks) {
		case 2:
			spec.DoubleGames = append(spec.DoubleGames, n)
		case 3:
			spec.TripleGames = append(spec.TripleGames, n)
		}
	}
	slices.Sort(spec.DoubleGames)
	slices.Sort(spec.TripleGames)
	return spec
}

// SimulationName formats names like SIM042-2025-06-01-MEGA-1.536K.
func SimulationName(now time.Time, shortID int, combinations int64) string {
	short := strconv.FormatInt(combinations, 10)
	if combinations >= 1000 {
		short = strconv.FormatFloat(float64(combinations)/1000, 'f', -1, 64) + "K"
	}
	return fmt.Sprintf("SIM%03d-%s-MEGA-%s", shortID, now.Format("2006-01-02"), short)
}

func (s *Service) cachedJackpot(ctx context.Context, id string) *Jackpot {
	if s.redisClient == nil {
		return nil
	}
	data, err := s.redisClient.Get(ctx, REDIS_KEY_JACKPOT+id).Bytes()
	if err != nil {
		return nil
	}
	var jp Jackpot
	if json.Unmarshal(data, &jp) != nil {
		return nil
	}
	return &jp
}

func (s *Service) cacheJackpot(ctx context.Context, jp *Jackpot) {
	if s.redisClient == nil {
		return
	}
	data, _ := json.Marshal(jp)
	if err := s.redisClient.Set(ctx, REDIS_KEY_JACKPOT+jp.ID, data, JACKPOT_CACHE_TTL).Err(); err != nil {
		log.Printf("[CACHE] Failed to cache jackpot %s: %v", jp.ID, err)
	}
}

func (s *Service) storeSlip(ctx context.Context, slip *Slip) {
	if s.redisClient == nil {
		return
	}
	data, _ := json.Marshal(slip)
	if err := s.redisClient.Set(ctx, REDIS_KEY_SLIP+slip.ID, data, SLIP_TTL).Err(); err != nil {
		log.Printf("[CACHE] Failed to store slip %s: %v", slip.ID, err)
	}
}
