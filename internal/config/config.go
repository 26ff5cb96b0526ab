package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	RulesPath      string
	MigrationsPath string
	RunMigrations  bool
}

// Load reads .env when present and builds the application config from the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[CONFIG] Error loading .env file: %v", err)
	}

	return &Config{
		Port:           GetEnv("PORT", "8080"),
		RulesPath:      GetEnv("RULES_PATH", ""),
		MigrationsPath: GetEnv("MIGRATIONS_PATH", "./migrations"),
		RunMigrations:  GetEnvAsBool("RUN_MIGRATIONS", false),
	}
}

func GetEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func GetEnvAsInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func GetEnvAsBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}
