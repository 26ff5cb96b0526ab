package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jackpotsim/internal/betting"
	"jackpotsim/internal/jackpot"
)

const (
	tableJackpots       = "jackpots"
	tableGames          = "jackpot_games"
	tableSimulations    = "simulations"
	tableSpecifications = "bet_specifications"
)

// Repository is the Postgres implementation of jackpot.Store.
type Repository struct {
	pool      *pgxpool.Pool
	txManager trm.Manager
	getter    *trmpgx.CtxGetter
}

func NewRepository(pool *pgxpool.Pool) (*Repository, error) {
	m, err := manager.New(trmpgx.NewDefaultFactory(pool))
	if err != nil {
		return nil, fmt.Errorf("create tx manager: %w", err)
	}
	return &Repository{
		pool:      pool,
		txManager: m,
		getter:    trmpgx.DefaultCtxGetter,
	}, nil
}

// conn returns the transaction bound to ctx, or the pool outside one.
func (r *Repository) conn(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.pool)
}

// CreateJackpot inserts the jackpot and its fixtures in one transaction.
func (r *Repository) CreateJackpot(ctx context.Context, jp *jackpot.Jackpot) error {
	if jp.ID == "" {
		jp.ID = uuid.New().String()
	}

	return r.txManager.Do(ctx, func(txCtx context.Context) error {
		query := sq.Insert(tableJackpots).
			Columns("id", "name", "total_matches", "status", "currency").
			Values(jp.ID, jp.Name, jp.TotalMatches, jp.Status, jp.Currency).
			Suffix("RETURNING created_at").
			PlaceholderFormat(sq.Dollar)

		sqlStr, args, err := query.ToSql()
		if err != nil {
			return err
		}
		if err := r.conn(txCtx).QueryRow(txCtx, sqlStr, args...).Scan(&jp.CreatedAt); err != nil {
			return fmt.Errorf("insert jackpot: %w", err)
		}

		if len(jp.Fixtures) == 0 {
			return nil
		}

		games := sq.Insert(tableGames).
			Columns("jackpot_id", "game_order", "home_team", "away_team", "home_odds", "draw_odds", "away_odds").
			PlaceholderFormat(sq.Dollar)
		for _, f := range jp.Fixtures {
			games = games.Values(jp.ID, f.Order, f.HomeTeam, f.AwayTeam, f.Odds.Home, f.Odds.Draw, f.Odds.Away)
		}

		sqlStr, args, err = games.ToSql()
		if err != nil {
			return err
		}
		if _, err := r.conn(txCtx).Exec(txCtx, sqlStr, args...); err != nil {
			return fmt.Errorf("insert fixtures: %w", err)
		}
		return nil
	})
}

func (r *Repository) GetJackpot(ctx context.Context, id string) (*jackpot.Jackpot, error) {
	return r.findJackpot(ctx, sq.Select(jackpotColumns...).
		From(tableJackpots).
		Where(sq.Eq{"id": id}))
}

// LatestJackpot returns the most recently created jackpot.
func (r *Repository) LatestJackpot(ctx context.Context) (*jackpot.Jackpot, error) {
	return r.findJackpot(ctx, sq.Select(jackpotColumns...).
		From(tableJackpots).
		OrderBy("created_at DESC").
		Limit(1))
}

var jackpotColumns = []string{"id", "name", "total_matches", "status", "currency", "created_at"}

func (r *Repository) findJackpot(ctx context.Context, query sq.SelectBuilder) (*jackpot.Jackpot, error) {
	sqlStr, args, err := query.PlaceholderFormat(sq.Dollar).ToSql()
	if err != nil {
		return nil, err
	}

	var jp jackpot.Jackpot
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).
		Scan(&jp.ID, &jp.Name, &jp.TotalMatches, &jp.Status, &jp.Currency, &jp.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, jackpot.ErrJackpotNotFound
		}
		return nil, err
	}

	fixtures, err := r.fixtures(ctx, jp.ID)
	if err != nil {
		return nil, err
	}
	jp.Fixtures = fixtures
	return &jp, nil
}

func (r *Repository) fixtures(ctx context.Context, jackpotID string) ([]jackpot.Fixture, error) {
	query := sq.Select("game_order", "home_team", "away_team", "home_odds", "draw_odds", "away_odds").
		From(tableGames).
		Where(sq.Eq{"jackpot_id": jackpotID}).
		OrderBy("game_order").
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fixtures := []jackpot.Fixture{}
	for rows.Next() {
		var f jackpot.Fixture
		if err := rows.Scan(&f.Order, &f.HomeTeam, &f.AwayTeam, &f.Odds.Home, &f.Odds.Draw, &f.Odds.Away); err != nil {
			return nil, err
		}
		fixtures = append(fixtures, f)
	}
	return fixtures, rows.Err()
}

// SaveSimulation writes the simulation row and its bet specification atomically.
func (r *Repository) SaveSimulation(ctx context.Context, sim *jackpot.Simulation, spec *jackpot.Specification) error {
	selections, err := json.Marshal(spec.GameSelections)
	if err != nil {
		return fmt.Errorf("encode selections: %w", err)
	}

	return r.txManager.Do(ctx, func(txCtx context.Context) error {
		query := sq.Insert(tableSimulations).
			Columns("id", "name", "jackpot_id", "combination_type", "double_count", "triple_count",
				"effective_combinations", "total_cost", "status", "created_at", "completed_at").
			Values(sim.ID, sim.Name, sim.JackpotID, string(sim.CombinationType), sim.DoubleCount, sim.TripleCount,
				sim.EffectiveCombinations, sim.TotalCost, sim.Status, sim.CreatedAt, sim.CompletedAt).
			PlaceholderFormat(sq.Dollar)

		sqlStr, args, err := query.ToSql()
		if err != nil {
			return err
		}
		if _, err := r.conn(txCtx).Exec(txCtx, sqlStr, args...); err != nil {
			return fmt.Errorf("insert simulation: %w", err)
		}

		query = sq.Insert(tableSpecifications).
			Columns("id", "simulation_id", "game_selections", "combination_type", "double_games", "triple_games",
				"total_combinations", "total_cost", "created_at").
			Values(spec.ID, sim.ID, string(selections), string(spec.CombinationType), spec.DoubleGames, spec.TripleGames,
				spec.TotalCombinations, spec.TotalCost, spec.CreatedAt).
			PlaceholderFormat(sq.Dollar)

		sqlStr, args, err = query.ToSql()
		if err != nil {
			return err
		}
		if _, err := r.conn(txCtx).Exec(txCtx, sqlStr, args...); err != nil {
			return fmt.Errorf("insert specification: %w", err)
		}
		return nil
	})
}

// GetSimulation loads a simulation with its specification, if one was stored.
func (r *Repository) GetSimulation(ctx context.Context, id string) (*jackpot.SimulationDetail, error) {
	query := sq.Select("id", "name", "jackpot_id", "combination_type", "double_count", "triple_count",
		"effective_combinations", "total_cost", "status", "created_at", "completed_at").
		From(tableSimulations).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var (
		detail      jackpot.SimulationDetail
		combination string
		completedAt *time.Time
	)
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(
		&detail.ID, &detail.Name, &detail.JackpotID, &combination, &detail.DoubleCount, &detail.TripleCount,
		&detail.EffectiveCombinations, &detail.TotalCost, &detail.Status, &detail.CreatedAt, &completedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, jackpot.ErrSimulationNotFound
		}
		return nil, err
	}
	detail.CombinationType = betting.CombinationType(combination)
	detail.CompletedAt = completedAt

	spec, err := r.specification(ctx, detail.ID)
	if err != nil {
		return nil, err
	}
	detail.Specification = spec
	return &detail, nil
}

func (r *Repository) specification(ctx context.Context, simulationID string) (*jackpot.Specification, error) {
	query := sq.Select("id", "simulation_id", "game_selections", "combination_type", "double_games", "triple_games",
		"total_combinations", "total_cost", "created_at").
		From(tableSpecifications).
		Where(sq.Eq{"simulation_id": simulationID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var (
		spec        jackpot.Specification
		selections  []byte
		combination string
	)
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(
		&spec.ID, &spec.SimulationID, &selections, &combination, &spec.DoubleGames, &spec.TripleGames,
		&spec.TotalCombinations, &spec.TotalCost, &spec.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(selections, &spec.GameSelections); err != nil {
		return nil, fmt.Errorf("decode selections for %s: %w", simulationID, err)
	}
	spec.CombinationType = betting.CombinationType(combination)
	return &spec, nil
}
