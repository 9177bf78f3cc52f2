package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// userIDKey is the Locals key holding the authenticated user's id.
const userIDKey = "userID"

// AccessTokenCookie is the cookie the web client stores the access
// token in; the Authorization header wins when both are present.
const AccessTokenCookie = "accessToken"

// TokenParser verifies an access token and returns the user id it was
// issued to.
type TokenParser interface {
	ParseAccessToken(token string) (uuid.UUID, error)
}

// NewAuth returns a middleware that requires a valid access token,
// taken from the Authorization bearer header or the accessToken cookie.
func NewAuth(parser TokenParser) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"statusCode": fiber.StatusUnauthorized,
				"data":       nil,
				"message":    "Unauthorized request",
				"success":    false,
				"errors":     []string{},
			})
		}

		userID, err := parser.ParseAccessToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"statusCode": fiber.StatusUnauthorized,
				"data":       nil,
				"message":    "Invalid access token",
				"success":    false,
				"errors":     []string{},
			})
		}

		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

func extractToken(c fiber.Ctx) string {
	auth := c.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return c.Cookies(AccessTokenCookie)
}

// UserID returns the authenticated user's id set by NewAuth.
func UserID(c fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(userIDKey).(uuid.UUID)
	return id, ok
}

// UserIDString returns the authenticated user's id as a string, or ""
// when the request is unauthenticated.
func UserIDString(c fiber.Ctx) string {
	if id, ok := UserID(c); ok {
		return id.String()
	}
	return ""
}
