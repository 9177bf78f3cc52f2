package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Harshil0408/contentify-backend/internal/service"
)

type StatsHandler struct {
	svc *service.UserService
}

func NewStatsHandler(svc *service.UserService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// GetStats handles GET /stats
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	stats, err := h.svc.GetStats(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, stats, "Statistics fetched successfully")
}
