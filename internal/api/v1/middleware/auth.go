package middleware

import (
	"strings"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/clienttrack/clienttrack/internal/services"
)

// principalKey is the locals key the resolved principal is stored under
const principalKey = "principal"

// RequirePrincipal returns a middleware that resolves the bearer token into a
// Principal, stored in the request's locals. The principal is resolved once
// per request; nothing is cached across requests.
func RequirePrincipal(auth *services.Auth) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing bearer token",
			})
		}

		principal, err := auth.ParseToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid session",
			})
		}

		c.Locals(principalKey, principal)
		return c.Next()
	}
}

// PrincipalFrom returns the principal resolved for this request, or nil
func PrincipalFrom(c *fiber.Ctx) *services.Principal {
	principal, _ := c.Locals(principalKey).(*services.Principal)
	return principal
}
