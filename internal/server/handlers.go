package server

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"jackpotsim/internal/betting"
	"jackpotsim/internal/jackpot"
)

func (s *FiberServer) healthHandler(c *fiber.Ctx) error {
	health := fiber.Map{
		"status": "ok",
		"sessions": fiber.Map{
			"connected_clients": s.hub.GetClientCount(),
		},
	}
	if s.db != nil {
		health["database"] = s.db.Health()
	}
	if s.cache != nil {
		health["cache"] = s.cache.Health()
	}
	return c.JSON(health)
}

// errorResponse maps service errors onto status codes.
func (s *FiberServer) errorResponse(c *fiber.Ctx, err error) error {
	var inputErr *betting.InvalidInputError
	status := fiber.StatusInternalServerError

	switch {
	case errors.As(err, &inputErr),
		errors.Is(err, jackpot.ErrBadRequest),
		errors.Is(err, jackpot.ErrUnknownMethod),
		errors.Is(err, betting.ErrBudgetTooLow):
		status = fiber.StatusBadRequest
	case errors.Is(err, jackpot.ErrJackpotNotFound),
		errors.Is(err, jackpot.ErrSimulationNotFound),
		errors.Is(err, jackpot.ErrSlipNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, jackpot.ErrRulesViolated):
		status = fiber.StatusUnprocessableEntity
	default:
		log.Printf("[SERVER] %s %s: %v", c.Method(), c.Path(), err)
		return c.Status(status).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid request body",
	})
}

// Simulation handlers

func (s *FiberServer) rulesHandler(c *fiber.Ctx) error {
	return c.JSON(s.jackpot.Rules())
}

func (s *FiberServer) validateSelectionsHandler(c *fiber.Ctx) error {
	jackpotID := c.Query("jackpot_id")
	if jackpotID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "jackpot_id is required",
		})
	}

	var req jackpot.ValidateRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	res, err := s.jackpot.ValidateSelections(c.Context(), jackpotID, req.GameSelections)
	if err != nil {
		return s.errorResponse(c, err)
	}
	return c.JSON(res)
}

func (s *FiberServer) createSimulationHandler(c *fiber.Ctx) error {
	var req jackpot.CreateSimulationRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	detail, err := s.jackpot.CreateSimulation(c.Context(), req)
	if err != nil {
		return s.errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(detail)
}

func (s *FiberServer) getSimulationHandler(c *fiber.Ctx) error {
	detail, err := s.jackpot.GetSimulation(c.Context(), c.Params("id"))
	if err != nil {
		return s.errorResponse(c, err)
	}
	return c.JSON(detail)
}

// Selection handlers

func (s *FiberServer) toggleHandler(c *fiber.Ctx) error {
	var req jackpot.ToggleRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	next, res, err := s.jackpot.Toggle(req)
	if err != nil {
		return s.errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"game_selections": next,
		"validation":      res,
	})
}

func (s *FiberServer) wouldBeValidHandler(c *fiber.Ctx) error {
	var req jackpot.ToggleRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}
	return c.JSON(fiber.Map{
		"would_be_valid": s.jackpot.WouldBeValid(req),
	})
}

// Jackpot handlers

func (s *FiberServer) createJackpotHandler(c *fiber.Ctx) error {
	var jp jackpot.Jackpot
	if err := c.BodyParser(&jp); err != nil {
		return invalidBody(c)
	}
	if jp.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name is required",
		})
	}

	if err := s.jackpot.CreateJackpot(c.Context(), &jp); err != nil {
		return s.errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(jp)
}

func (s *FiberServer) latestJackpotHandler(c *fiber.Ctx) error {
	jp, err := s.jackpot.LatestJackpot(c.Context())
	if err != nil {
		return s.errorResponse(c, err)
	}
	return c.JSON(jp)
}

func (s *FiberServer) getJackpotHandler(c *fiber.Ctx) error {
	jp, err := s.jackpot.GetJackpot(c.Context(), c.Params("id"))
	if err != nil {
		return s.errorResponse(c, err)
	}
	return c.JSON(jp)
}

func (s *FiberServer) generateHandler(c *fiber.Ctx) error {
	var req jackpot.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	slip, err := s.jackpot.Generate(c.Context(), c.Params("id"), req)
	if err != nil {
		return s.errorResponse(c, err)
	}
	return c.JSON(jackpot.GenerateResponse{
		Success: true,
		Message: "Slip generated",
		Slip:    slip,
	})
}

// Slip handlers

func (s *FiberServer) getSlipHandler(c *fiber.Ctx) error {
	slip, err := s.jackpot.GetSlip(c.Context(), c.Params("id"))
	if err != nil {
		return s.errorResponse(c, err)
	}
	return c.JSON(slip)
}

func (s *FiberServer) verifySlipHandler(c *fiber.Ctx) error {
	var req jackpot.VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidBody(c)
	}

	resp, err := s.jackpot.VerifySlip(c.Context(), req)
	if err != nil {
		return s.errorResponse(c, err)
	}
	return c.JSON(resp)
}
