package core

import "errors"

// Credential errors
var (
	ErrAccountExists      = errors.New("account name already registered")           // 409 Conflict
	ErrAccountNotFound    = errors.New("account not found")                         // 404 Not Found
	ErrInvalidCredentials = errors.New("invalid account name or password")          // 401 Unauthorized
	ErrAccountDisabled    = errors.New("account is disabled")                       // 403 Forbidden
	ErrRoleMismatch       = errors.New("selected role does not match this account") // 403 Forbidden
)

// Session errors
var (
	ErrMissingAuthHeader = errors.New("missing authorization header") // 401
	ErrInvalidToken      = errors.New("invalid session token")        // 401
	ErrSessionNotFound   = errors.New("session not found")            // 401
	ErrSessionExpired    = errors.New("session expired")              // 401
	ErrCacheNotFound     = errors.New("session not found in cache")
)

// Validation errors (client input)
var (
	ErrNameRequired            = errors.New("account name is required")     // 400
	ErrPasswordRequired        = errors.New("password is required")         // 400
	ErrConfirmPasswordRequired = errors.New("confirm password is required") // 400
	ErrRoleRequired            = errors.New("role is required")             // 400
	ErrPasswordMismatch        = errors.New("passwords do not match")       // 400
	ErrInvalidRole             = errors.New("unknown role")                 // 400
	ErrInvalidStatus           = errors.New("unknown status")               // 400
)

// Config errors (server-side configuration)
var (
	ErrStorageRequired     = errors.New("storage adapter is required") // 500
	ErrHTTPAdapterRequired = errors.New("http adapter is required")    // 500
)
