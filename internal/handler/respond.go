package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Harshil0408/contentify-backend/internal/apierr"
	"github.com/Harshil0408/contentify-backend/internal/middleware"
)

// envelope is the uniform success body for every endpoint.
type envelope struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// errorEnvelope adds the errors array failure responses carry. It is
// initialized to an empty slice so it serializes as [] rather than
// null.
type errorEnvelope struct {
	StatusCode int      `json:"statusCode"`
	Data       any      `json:"data"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

// respond writes a success envelope.
func respond(c fiber.Ctx, status int, data any, message string) error {
	return c.Status(status).JSON(envelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// fail converts a service error into the error envelope. Internal
// causes are logged, never returned to the client.
func fail(c fiber.Ctx, err error) error {
	apiErr := apierr.From(err)
	if apiErr.Kind == apierr.KindInternal && apiErr.Err != nil {
		middleware.Logger.Error().
			Err(apiErr.Err).
			Str("path", c.Path()).
			Msg("internal error")
	}
	return c.Status(apiErr.StatusCode()).JSON(errorEnvelope{
		StatusCode: apiErr.StatusCode(),
		Data:       nil,
		Message:    apiErr.Message,
		Success:    false,
		Errors:     []string{},
	})
}
