package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Harshil0408/contentify-backend/internal/middleware"
	"github.com/Harshil0408/contentify-backend/internal/service"
)

// LikeHandler serves the /like group.
type LikeHandler struct {
	likes *service.LikeService
}

func NewLikeHandler(likes *service.LikeService) *LikeHandler {
	return &LikeHandler{likes: likes}
}

// ToggleVideoLike handles POST /like/like-video/:videoId
func (h *LikeHandler) ToggleVideoLike(c fiber.Ctx) error {
	userID, _ := middleware.UserID(c)

	result, err := h.likes.ToggleVideoLike(c.Context(), userID, c.Params("videoId"))
	if err != nil {
		return fail(c, err)
	}

	message := "Like removed successfully"
	direction := "removed"
	if result.Added {
		message = "Like added successfully"
		direction = "added"
	}
	Metrics.TogglesTotal.WithLabelValues("like", direction).Inc()
	return respond(c, fiber.StatusOK, result, message)
}
