package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Harshil0408/contentify-backend/internal/apierr"
	"github.com/Harshil0408/contentify-backend/internal/middleware"
	"github.com/Harshil0408/contentify-backend/internal/model"
	"github.com/Harshil0408/contentify-backend/internal/service"
)

// UserHandler serves the /user group.
type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Me handles GET /user/me
func (h *UserHandler) Me(c fiber.Ctx) error {
	userID, _ := middleware.UserID(c)

	user, err := h.users.Me(c.Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, user, "User fetched successfully")
}

// Onboard handles PATCH /user/onboarding
func (h *UserHandler) Onboard(c fiber.Ctx) error {
	userID, _ := middleware.UserID(c)

	var in model.OnboardingInput
	if err := c.Bind().Body(&in); err != nil {
		return fail(c, apierr.InvalidArgument("Invalid request body"))
	}

	user, err := h.users.Onboard(c.Context(), userID, in)
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, user, "Onboarding completed successfully")
}

// Channel handles GET /user/channel/:channelId
func (h *UserHandler) Channel(c fiber.Ctx) error {
	profile, err := h.users.ChannelProfile(c.Context(), c.Params("channelId"))
	if err != nil {
		return fail(c, err)
	}
	return respond(c, fiber.StatusOK, profile, "Channel fetched successfully")
}
