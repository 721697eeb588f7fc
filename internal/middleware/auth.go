package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taskdeck/internal/token"
	"taskdeck/pkg/logger"
)

// RequireAuth resolves the acting user exactly once per request from the
// bearer access token and stores the id in locals. Handlers read it from
// there and pass it to the services as a plain argument; no handler ever
// parses a token itself.
func RequireAuth(tokens *token.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthenticated(c, "No token provided")
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return unauthenticated(c, "Invalid token format")
		}

		userID, err := tokens.Verify(parts[1])
		if err != nil {
			logger.SecurityLogger.Warn("Rejected access token", zap.Error(err))
			return unauthenticated(c, "Invalid or expired token")
		}

		c.Locals("userID", userID)
		return c.Next()
	}
}

// ActorID reads the user id RequireAuth stored for this request.
func ActorID(c *fiber.Ctx) int {
	id, _ := c.Locals("userID").(int)
	return id
}

func unauthenticated(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": msg,
		"success": false,
		"status":  fiber.StatusUnauthorized,
	})
}
