package core

// HTTPAdapter binds the auth endpoints onto a concrete web framework.
type HTTPAdapter interface {
	RegisterRoutes(provider AuthProvider, basePath string) error
}

// Endpoint is a framework-agnostic endpoint specification. Adapters look
// handlers up by operation ID.
type Endpoint struct {
	Path     string
	Method   string
	Metadata EndpointMetadata
}

type EndpointMetadata struct {
	OperationID string
	Description string
}

// ErrorResponse represents an error response structure
type ErrorResponse struct {
	Error string `json:"error"`
}
