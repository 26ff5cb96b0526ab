package server

import (
	"encoding/json"
	"log"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"jackpotsim/internal/jackpot"
)

func (s *FiberServer) RegisterFiberRoutes() {
	s.App.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Accept,Authorization,Content-Type",
		AllowCredentials: false, // credentials require explicit origins
		MaxAge:           300,
	}))

	s.App.Get("/health", s.healthHandler)

	api := s.App.Group("/api/v1")

	simulations := api.Group("/simulations")
	simulations.Get("/rules/sportpesa", s.rulesHandler)
	simulations.Post("/validate-selections", s.validateSelectionsHandler)
	simulations.Post("/", s.createSimulationHandler)
	simulations.Get("/:id", s.getSimulationHandler)

	selections := api.Group("/selections")
	selections.Post("/toggle", s.toggleHandler)
	selections.Post("/would-be-valid", s.wouldBeValidHandler)

	jackpots := api.Group("/jackpots")
	jackpots.Post("/", s.createJackpotHandler)
	jackpots.Get("/latest", s.latestJackpotHandler)
	jackpots.Get("/:id", s.getJackpotHandler)
	jackpots.Post("/:id/generate", s.generateHandler)

	slips := api.Group("/slips")
	slips.Post("/verify", s.verifySlipHandler)
	slips.Get("/:id", s.getSlipHandler)

	s.App.Use("/ws", s.upgradeHandler)
	s.App.Get("/ws", websocket.New(s.sessionWebSocketHandler))
}

// upgradeHandler admits WebSocket upgrades for an existing jackpot only.
func (s *FiberServer) upgradeHandler(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.Status(fiber.StatusUpgradeRequired).JSON(fiber.Map{
			"error": "WebSocket upgrade required",
		})
	}

	jackpotID := c.Query("jackpot_id")
	if jackpotID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "jackpot_id is required",
		})
	}

	jp, err := s.jackpot.GetJackpot(c.Context(), jackpotID)
	if err != nil {
		return s.errorResponse(c, err)
	}
	c.Locals("jackpot", jp)
	return c.Next()
}

// sessionWebSocketHandler runs one selection session per connection.
func (s *FiberServer) sessionWebSocketHandler(conn *websocket.Conn) {
	jp := conn.Locals("jackpot").(*jackpot.Jackpot)

	client := s.hub.RegisterClient(conn, jp.ID)
	defer s.hub.UnregisterClient(client)

	session := jackpot.NewSession(jp, s.jackpot.Rules(), jackpot.CryptoRand())

	initial := session.Handle(jackpot.SessionMessage{Type: "validate"})
	initial.Type = "initial_state"
	client.Send(initial)

	for {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			log.Printf("[WS] Read error for jackpot %s: %v", jp.ID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg jackpot.SessionMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			client.Send(jackpot.SessionReply{Type: "error", Message: "Invalid message"})
			continue
		}

		client.Send(session.Handle(msg))
	}
}
