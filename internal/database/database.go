package database

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"

	"jackpotsim/internal/config"
)

// Service represents a service that interacts with a database.
type Service interface {
	// Pool exposes the connection pool for repositories.
	Pool() *pgxpool.Pool

	// Health returns a map of health status information.
	// The keys and values in the map are service-specific.
	Health() map[string]string

	// Close terminates the database connection.
	Close() error
}

type service struct {
	pool *pgxpool.Pool
}

var (
	database   = config.GetEnv("BLUEPRINT_DB_DATABASE", "jackpotsim")
	password   = config.GetEnv("BLUEPRINT_DB_PASSWORD", "postgres")
	username   = config.GetEnv("BLUEPRINT_DB_USERNAME", "postgres")
	port       = config.GetEnv("BLUEPRINT_DB_PORT", "5432")
	host       = config.GetEnv("BLUEPRINT_DB_HOST", "localhost")
	schema     = config.GetEnv("BLUEPRINT_DB_SCHEMA", "public")
	dbInstance *service
)

// DSN builds the connection string from the BLUEPRINT_DB_* settings.
func DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable&search_path=%s",
		username, password, host, port, database, schema)
}

func New() Service {
	if dbInstance != nil {
		return dbInstance
	}

	cfg, err := pgxpool.ParseConfig(DSN())
	if err != nil {
		log.Fatalf("[DB] Invalid connection settings: %v", err)
	}
	cfg.MaxConns = 25
	cfg.MinConns = 2
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 5 * time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		log.Fatalf("[DB] Failed to create pool: %v", err)
	}

	dbInstance = &service{pool: pool}
	return dbInstance
}

func (s *service) Pool() *pgxpool.Pool {
	return s.pool
}

// Health checks the health of the database connection by pinging the database.
// It returns a map with keys indicating various health statistics.
func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)

	if err := s.pool.Ping(ctx); err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("db down: %v", err)
		log.Printf("[DB] Health check failed: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "It's healthy"

	poolStats := s.pool.Stat()
	stats["total_conns"] = strconv.Itoa(int(poolStats.TotalConns()))
	stats["idle_conns"] = strconv.Itoa(int(poolStats.IdleConns()))
	stats["acquired_conns"] = strconv.Itoa(int(poolStats.AcquiredConns()))
	stats["acquire_count"] = strconv.FormatInt(poolStats.AcquireCount(), 10)
	stats["empty_acquire_count"] = strconv.FormatInt(poolStats.EmptyAcquireCount(), 10)
	stats["max_lifetime_destroy_count"] = strconv.FormatInt(poolStats.MaxLifetimeDestroyCount(), 10)

	if poolStats.AcquiredConns() > poolStats.MaxConns()*8/10 {
		stats["message"] = "The database is experiencing heavy load."
	}

	return stats
}

// Close closes the pool. It logs a message indicating the disconnection from the
// specific database.
func (s *service) Close() error {
	log.Printf("[DB] Disconnected from database: %s", database)
	s.pool.Close()
	dbInstance = nil
	return nil
}
