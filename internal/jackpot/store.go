package jackpot

import (
	"context"
	"errors"
)

var (
	ErrJackpotNotFound    = errors.New("jackpot not found")
	ErrSimulationNotFound = errors.New("simulation not found")
	ErrSlipNotFound       = errors.New("slip not found")
	ErrUnknownMethod      = errors.New("unknown generation method")
	ErrRulesViolated      = errors.New("selections violate SportPesa rules")
	ErrBadRequest         = errors.New("bad request")
)

// Store persists jackpots and saved simulations.
type Store interface {
	CreateJackpot(ctx context.Context, jp *Jackpot) error
	GetJackpot(ctx context.Context, id string) (*Jackpot, error)
	LatestJackpot(ctx context.Context) (*Jackpot, error)
	// SaveSimulation writes the simulation and its specification atomically.
	SaveSimulation(ctx context.Context, sim *Simulation, spec *Specification) error
	GetSimulation(ctx context.Context, id string) (*SimulationDetail, error)
}
