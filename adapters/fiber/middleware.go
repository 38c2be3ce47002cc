package fiber

import (
	"github.com/gofiber/fiber/v3"

	"github.com/mwhited/gatehouse"
)

// RequireAuth creates a Fiber middleware that validates the bearer token
// and stores the account and session in the context for downstream
// handlers.
func RequireAuth(provider gatehouse.AuthProvider) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": gatehouse.ErrMissingAuthHeader.Error(),
			})
		}

		sessionData, err := provider.GetSession(token)
		if err != nil {
			return handleAuthError(c, err)
		}

		c.Locals("account", sessionData.Account)
		c.Locals("session", sessionData.Session)

		return c.Next()
	}
}

// RequireRole builds on RequireAuth by additionally gating the route to a
// single role. The account must already be in the context.
func RequireRole(role gatehouse.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		account, ok := c.Locals("account").(*gatehouse.Account)
		if !ok || account == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": gatehouse.ErrInvalidToken.Error(),
			})
		}

		if account.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": gatehouse.ErrRoleMismatch.Error(),
			})
		}

		return c.Next()
	}
}
