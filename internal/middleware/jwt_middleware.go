package middleware

import (
	"strings"

	"weatherapi/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// UserIDKey is the fiber.Ctx Locals key holding the authenticated user ID.
const UserIDKey = "user_id"

// TokenVerifier resolves a bearer token to a user ID.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// AuthRequired is a Fiber middleware to check for a valid JWT token.
// Every failure yields the same 401 body; the cause is only logged.
func AuthRequired(tokens TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c)
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return unauthorized(c)
		}

		userID, err := tokens.Verify(parts[1])
		if err != nil {
			log.Debug().Err(err).Str("path", c.Path()).Msg("JWT validation failed")
			return unauthorized(c)
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}

// CurrentUserID returns the user ID stored by AuthRequired.
func CurrentUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals(UserIDKey).(string)
	return userID
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Unauthorized",
	})
}

// Compile-time check that the token service satisfies TokenVerifier.
var _ TokenVerifier = (*services.TokenService)(nil)
