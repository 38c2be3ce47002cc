// Package fiber binds the auth endpoints onto a Fiber v3 application.
package fiber

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/mwhited/gatehouse"
	"github.com/mwhited/gatehouse/services"
)

type Adapter struct {
	app *fiber.App
}

var _ gatehouse.HTTPAdapter = (*Adapter)(nil)

func New(app *fiber.App) *Adapter {
	return &Adapter{app: app}
}

// RegisterRoutes mounts the framework-agnostic base endpoints under
// basePath, resolving each handler by operation ID.
func (a *Adapter) RegisterRoutes(provider gatehouse.AuthProvider, basePath string) error {
	api := a.app.Group(basePath)

	handlers := map[string]fiber.Handler{
		"registerAccount":          handleRegister(provider),
		"loginWithNameAndPassword": handleLogin(provider),
		"logout":                   handleLogout(provider),
		"getSession":               handleGetSession(provider),
	}

	for _, ep := range services.BaseEndpoints() {
		handler, ok := handlers[ep.Metadata.OperationID]
		if !ok {
			return fmt.Errorf("no handler for operation %q", ep.Metadata.OperationID)
		}
		api.Add([]string{ep.Method}, ep.Path, handler)
	}

	return nil
}
