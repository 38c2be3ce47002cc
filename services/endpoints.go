package services

import (
	"fmt"

	"github.com/mwhited/gatehouse/core"
)

// BaseEndpoints returns framework-agnostic endpoint specifications for all
// core authentication endpoints.
//
// Handlers are not part of the specification; adapters resolve them by
// operation ID. This allows multiple adapters (Fiber, Gin, Echo) to share
// the same endpoint definitions.
func BaseEndpoints() []core.Endpoint {
	return []core.Endpoint{
		{
			Path:   "/register",
			Method: "POST",
			Metadata: core.EndpointMetadata{
				OperationID: "registerAccount",
				Description: "Register a new account with a name, password and role",
			},
		},
		{
			Path:   "/login",
			Method: "POST",
			Metadata: core.EndpointMetadata{
				OperationID: "loginWithNameAndPassword",
				Description: "Authenticate an account and issue a session token",
			},
		},
		{
			Path:   "/logout",
			Method: "POST",
			Metadata: core.EndpointMetadata{
				OperationID: "logout",
				Description: "Invalidate the current session",
			},
		},
		{
			Path:   "/session",
			Method: "GET",
			Metadata: core.EndpointMetadata{
				OperationID: "getSession",
				Description: "Get the current account's session data",
			},
		},
	}
}

// EndpointRegistry manages a collection of framework-agnostic endpoints
// and handles conflict detection for duplicate METHOD:PATH combinations.
//
// It starts with the base authentication endpoints and supports
// registration of additional endpoints with automatic conflict detection.
type EndpointRegistry struct {
	// endpoints stores all registered endpoints keyed by "METHOD:PATH"
	endpoints map[string]*core.Endpoint
}

// NewEndpointRegistry creates a new registry with all base authentication
// endpoints pre-registered.
func NewEndpointRegistry() *EndpointRegistry {
	reg := &EndpointRegistry{
		endpoints: make(map[string]*core.Endpoint),
	}

	for i := range BaseEndpoints() {
		ep := BaseEndpoints()[i]
		_ = reg.register(&ep)
	}

	return reg
}

// register adds a single endpoint to the registry with conflict detection.
// Returns error if an endpoint with the same METHOD:PATH already exists.
func (r *EndpointRegistry) register(ep *core.Endpoint) error {
	key := fmt.Sprintf("%s:%s", ep.Method, ep.Path)

	if _, exists := r.endpoints[key]; exists {
		return fmt.Errorf("endpoint conflict: %s %s already registered", ep.Method, ep.Path)
	}

	r.endpoints[key] = ep
	return nil
}

// Register adds additional endpoints to the registry. Returns error if any
// endpoint conflicts with existing endpoints or with other endpoints in the
// same batch. If an error occurs, no endpoints from the batch are
// registered.
func (r *EndpointRegistry) Register(endpoints []core.Endpoint) error {
	for i := range endpoints {
		ep := &endpoints[i]
		key := fmt.Sprintf("%s:%s", ep.Method, ep.Path)

		if _, exists := r.endpoints[key]; exists {
			return fmt.Errorf("endpoint conflict: %s %s already registered", ep.Method, ep.Path)
		}
	}

	seen := make(map[string]bool)
	for i := range endpoints {
		ep := &endpoints[i]
		key := fmt.Sprintf("%s:%s", ep.Method, ep.Path)
		if seen[key] {
			return fmt.Errorf("endpoint conflict within batch: %s %s", ep.Method, ep.Path)
		}
		seen[key] = true
	}

	for i := range endpoints {
		_ = r.register(&endpoints[i])
	}
	return nil
}

// Endpoints returns all registered endpoints.
func (r *EndpointRegistry) Endpoints() []core.Endpoint {
	out := make([]core.Endpoint, 0, len(r.endpoints))
	for _, ep := range r.endpoints {
		out = append(out, *ep)
	}
	return out
}
