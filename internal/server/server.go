package server

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"jackpotsim/internal/betting"
	"jackpotsim/internal/cache"
	"jackpotsim/internal/database"
	"jackpotsim/internal/jackpot"
)

type FiberServer struct {
	*fiber.App

	db      database.Service
	cache   cache.Service
	hub     *jackpot.Hub
	jackpot *jackpot.Service
}

// New wires Postgres, the optional Redis cache and the jackpot service, then registers
// every route.
func New(rules betting.Rules) *FiberServer {
	db := database.New()

	repo, err := database.NewRepository(db.Pool())
	if err != nil {
		log.Fatalf("[SERVER] %v", err)
	}

	redisService := cache.New()
	if redisService == nil {
		log.Println("[SERVER] Redis unavailable: jackpots uncached, slips not retrievable")
	}

	hub := jackpot.NewHub()
	svc := jackpot.NewService(repo, cache.Client(redisService), hub, rules)

	server := newFiberServer(svc, hub)
	server.db = db
	server.cache = redisService

	go hub.Run()
	log.Printf("[SERVER] Jackpot service ready, generators: %v", svc.Methods())

	return server
}

func newFiberServer(svc *jackpot.Service, hub *jackpot.Hub) *FiberServer {
	server := &FiberServer{
		App: fiber.New(fiber.Config{
			ServerHeader:  "jackpotsim",
			AppName:       "jackpotsim",
			ReadTimeout:   10 * time.Second,
			WriteTimeout:  10 * time.Second,
			IdleTimeout:   120 * time.Second,
			StrictRouting: false,
		}),

		hub:     hub,
		jackpot: svc,
	}

	server.App.Use(recover.New())
	server.App.Use(compress.New())
	server.App.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
	}))

	server.RegisterFiberRoutes()
	return server
}

// Shutdown stops the HTTP server and the hub, then closes connections.
func (s *FiberServer) Shutdown() error {
	log.Println("[SERVER] Shutting down...")

	err := s.App.Shutdown()

	if s.hub != nil {
		s.hub.Stop()
	}
	if s.cache != nil {
		s.cache.Close()
	}
	if s.db != nil {
		s.db.Close()
	}

	return err
}
