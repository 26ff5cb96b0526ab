package cache

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"

	"jackpotsim/internal/config"
)

type Service interface {
	GetClient() *redis.Client
	Health() map[string]string
	Close() error
}

type service struct {
	client *redis.Client
}

var cacheInstance *service

// options reads the REDIS_* settings at connect time.
func options() *redis.Options {
	return &redis.Options{
		Addr:         config.GetEnv("REDIS_URL", "localhost:6379"),
		Password:     config.GetEnv("REDIS_PASSWORD", ""),
		DB:           config.GetEnvAsInt("REDIS_DB", 0),
		PoolSize:     config.GetEnvAsInt("REDIS_POOL_SIZE", 50),
		MinIdleConns: 5,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// New connects to Redis. It returns nil when Redis is unreachable; jackpots are then
// read straight from Postgres and generated slips are not kept.
func New() Service {
	if cacheInstance != nil {
		return cacheInstance
	}

	client := redis.NewClient(options())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Printf("[CACHE] Redis connection failed: %v", err)
		log.Println("[CACHE] Running without Redis cache")
		client.Close()
		return nil
	}

	log.Println("[CACHE] Redis connected successfully")

	cacheInstance = &service{
		client: client,
	}

	return cacheInstance
}

// Client unwraps s, tolerating a nil service.
func Client(s Service) *redis.Client {
	if s == nil {
		return nil
	}
	return s.GetClient()
}

func (s *service) GetClient() *redis.Client {
	return s.client
}

func (s *service) Health() map[string]string {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	stats := make(map[string]string)

	_, err := s.client.Ping(ctx).Result()
	if err != nil {
		stats["status"] = "down"
		stats["error"] = fmt.Sprintf("redis down: %v", err)
		return stats
	}

	stats["status"] = "up"
	stats["message"] = "Redis is healthy"

	poolStats := s.client.PoolStats()
	stats["hits"] = strconv.FormatUint(uint64(poolStats.Hits), 10)
	stats["misses"] = strconv.FormatUint(uint64(poolStats.Misses), 10)
	stats["timeouts"] = strconv.FormatUint(uint64(poolStats.Timeouts), 10)
	stats["total_conns"] = strconv.FormatUint(uint64(poolStats.TotalConns), 10)
	stats["idle_conns"] = strconv.FormatUint(uint64(poolStats.IdleConns), 10)

	return stats
}

func (s *service) Close() error {
	log.Println("[CACHE] Disconnecting from Redis")
	cacheInstance = nil
	return s.client.Close()
}
