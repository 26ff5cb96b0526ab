package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"jackpotsim/internal/config"
	"jackpotsim/internal/database"
	"jackpotsim/internal/server"
)

func main() {
	cfg := config.Load()

	rules, err := config.LoadRules(cfg.RulesPath)
	if err != nil {
		log.Fatalf("[SERVER] %v", err)
	}

	if cfg.RunMigrations {
		db, err := database.OpenSQL()
		if err != nil {
			log.Fatalf("[DB] Failed to open database: %v", err)
		}
		if err := database.RunMigrations(db, cfg.MigrationsPath); err != nil {
			log.Fatalf("[DB] Migration failed: %v", err)
		}
		db.Close()
	}

	srv := server.New(rules)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("[SERVER] Listening on :%s", cfg.Port)
		if err := srv.Listen(":" + cfg.Port); err != nil {
			log.Printf("[SERVER] Listen stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()

	if err := srv.Shutdown(); err != nil {
		log.Printf("[SERVER] Shutdown error: %v", err)
	}
	log.Println("[SERVER] Stopped")
}
