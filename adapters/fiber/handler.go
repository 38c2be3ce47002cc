package fiber

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/mwhited/gatehouse"
)

// handleRegister returns a handler for the register endpoint
func handleRegister(provider gatehouse.AuthProvider) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input gatehouse.RegisterInput
		if err := c.Bind().Body(&input); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		result, err := provider.Register(input)
		if err != nil {
			return handleAuthError(c, err)
		}

		return c.Status(http.StatusCreated).JSON(result)
	}
}

// handleLogin returns a handler for the login endpoint
func handleLogin(provider gatehouse.AuthProvider) fiber.Handler {
	return func(c fiber.Ctx) error {
		var input gatehouse.LoginInput
		if err := c.Bind().Body(&input); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}

		ipAddress := c.IP()
		userAgent := c.Get(fiber.HeaderUserAgent)

		result, err := provider.Login(input, ipAddress, userAgent)
		if err != nil {
			return handleAuthError(c, err)
		}

		return c.Status(http.StatusOK).JSON(result)
	}
}

// handleLogout returns a handler for the logout endpoint
func handleLogout(provider gatehouse.AuthProvider) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
				"error": gatehouse.ErrMissingAuthHeader.Error(),
			})
		}

		if err := provider.Logout(token); err != nil {
			return handleAuthError(c, err)
		}

		return c.Status(http.StatusOK).JSON(fiber.Map{
			"message": "logged out successfully",
		})
	}
}

// handleGetSession returns a handler for the get-session endpoint
func handleGetSession(provider gatehouse.AuthProvider) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := extractToken(c)
		if token == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
				"error": gatehouse.ErrMissingAuthHeader.Error(),
			})
		}

		session, err := provider.GetSession(token)
		if err != nil {
			return handleAuthError(c, err)
		}

		return c.Status(http.StatusOK).JSON(session)
	}
}

// extractToken extracts the authentication token from the request.
// Checks Authorization header (Bearer token) first, then falls back to cookie.
func extractToken(c fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		return authHeader[7:]
	}

	return c.Cookies("auth_token")
}

// handleAuthError maps auth errors to appropriate HTTP responses. Domain
// errors are surfaced verbatim; anything else is an infrastructure fault
// and the caller only sees a generic message.
func handleAuthError(c fiber.Ctx, err error) error {
	status := mapErrorToStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

// mapErrorToStatus maps gatehouse error types to HTTP status codes
func mapErrorToStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch {
	case errors.Is(err, gatehouse.ErrInvalidCredentials),
		errors.Is(err, gatehouse.ErrMissingAuthHeader),
		errors.Is(err, gatehouse.ErrInvalidToken),
		errors.Is(err, gatehouse.ErrSessionNotFound),
		errors.Is(err, gatehouse.ErrSessionExpired):
		return http.StatusUnauthorized

	case errors.Is(err, gatehouse.ErrAccountDisabled),
		errors.Is(err, gatehouse.ErrRoleMismatch):
		return http.StatusForbidden

	case errors.Is(err, gatehouse.ErrAccountExists):
		return http.StatusConflict

	case errors.Is(err, gatehouse.ErrNameRequired),
		errors.Is(err, gatehouse.ErrPasswordRequired),
		errors.Is(err, gatehouse.ErrConfirmPasswordRequired),
		errors.Is(err, gatehouse.ErrRoleRequired),
		errors.Is(err, gatehouse.ErrPasswordMismatch),
		errors.Is(err, gatehouse.ErrInvalidRole):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}
