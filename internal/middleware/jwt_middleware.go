package middleware

import (
	"context"
	"errors"
	"strings"

	"donation-api/internal/models"
	"donation-api/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const principalKey = "principal"

// Authenticator turns a bearer token into the active caller it identifies.
// Failures wrapping services.ErrUnauthorized are answered with 401; anything
// else is a server error.
type Authenticator interface {
	Authenticate(ctx context.Context, tokenString string) (models.Principal, error)
}

// AuthRequired is a Fiber middleware to check for a valid JWT bearer token.
// The resolved caller is stored in the request locals, see PrincipalFrom.
func AuthRequired(authenticator Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header is required",
			})
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && strings.EqualFold(parts[0], "Bearer")) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		principal, err := authenticator.Authenticate(c.UserContext(), strings.TrimSpace(parts[1]))
		if err != nil && !errors.Is(err, services.ErrUnauthorized) {
			log.Error().Err(err).Str("path", c.Path()).Msg("authentication lookup failed")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Internal server error",
			})
		}
		if err != nil {
			log.Debug().Err(err).Str("path", c.Path()).Msg("JWT validation failed")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
				"error":   err.Error(),
			})
		}

		c.Locals(principalKey, principal)
		return c.Next()
	}
}

// AdminOnly rejects authenticated callers without the admin role. It must run
// after AuthRequired.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFrom(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication required",
			})
		}
		if !principal.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Admin role required",
			})
		}
		return c.Next()
	}
}

// PrincipalFrom returns the caller stored by AuthRequired.
func PrincipalFrom(c *fiber.Ctx) (models.Principal, bool) {
	principal, ok := c.Locals(principalKey).(models.Principal)
	return principal, ok
}
