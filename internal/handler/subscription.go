package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Harshil0408/contentify-backend/internal/middleware"
	"github.com/Harshil0408/contentify-backend/internal/service"
)

// SubscriptionHandler serves the /subscription group.
type SubscriptionHandler struct {
	subs *service.SubscriptionService
}

func NewSubscriptionHandler(subs *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subs: subs}
}

// Toggle handles POST /subscription/toggle-subscribe/:channelId
func (h *SubscriptionHandler) Toggle(c fiber.Ctx) error {
	userID, _ := middleware.UserID(c)

	result, err := h.subs.Toggle(c.Context(), userID, c.Params("channelId"))
	if err != nil {
		return fail(c, err)
	}

	message := "Unsubscribed successfully"
	direction := "removed"
	if result.Added {
		message = "Subscribed successfully"
		direction = "added"
	}
	Metrics.TogglesTotal.WithLabelValues("subscription", direction).Inc()
	return respond(c, fiber.StatusOK, result, message)
}
