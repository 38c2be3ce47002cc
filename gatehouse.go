// Package gatehouse is the credential-verification and role-bound session
// core of a school records system. It reconciles account lookup, password
// verification, status and role-claim checks into a single login contract,
// and issues bearer-token sessions with role-derived landing destinations.
//
// Storage, HTTP framework and cache are ports; adapters for pgx and Fiber
// live under adapters/.
package gatehouse

import (
	"time"

	"github.com/mwhited/gatehouse/core"
	"github.com/mwhited/gatehouse/pkg/crypto"
	"github.com/mwhited/gatehouse/services"
)

// interfaces
type (
	AuthStorage       = core.AuthStorage
	CredentialStorage = core.CredentialStorage
	SessionStorage    = core.SessionStorage
	Cache             = core.Cache

	HTTPAdapter  = core.HTTPAdapter
	AuthProvider = core.AuthProvider

	PasswordHandler = crypto.PasswordHandler
)

// structs
type (
	SessionManager = services.SessionManager
	SessionConfig  = services.SessionConfig
	CacheConfig    = core.CacheConfig
)

type (
	Account     = core.Account
	Session     = core.Session
	SessionData = core.SessionData
	Role        = core.Role
	Status      = core.Status
	CacheStats  = core.CacheStats

	RegisterInput  = core.RegisterInput
	RegisterResult = core.RegisterResult
	LoginInput     = core.LoginInput
	LoginResult    = core.LoginResult
)

const (
	RoleAdmin   = core.RoleAdmin
	RoleTeacher = core.RoleTeacher
	RoleStudent = core.RoleStudent

	StatusActive   = core.StatusActive
	StatusDisabled = core.StatusDisabled
)

const defaultBasePath = "/api/auth"

// Constructors & helpers (convenience re-exports)
var (
	NewInMemoryCache     = core.NewInMemoryCache
	NewArgon2            = crypto.NewArgon2
	DefaultSessionConfig = services.DefaultSessionConfig
	ParseRole            = core.ParseRole
	ParseStatus          = core.ParseStatus
)

var (
	ErrAccountExists      = core.ErrAccountExists
	ErrAccountNotFound    = core.ErrAccountNotFound
	ErrInvalidCredentials = core.ErrInvalidCredentials
	ErrAccountDisabled    = core.ErrAccountDisabled
	ErrRoleMismatch       = core.ErrRoleMismatch
)

var (
	ErrMissingAuthHeader = core.ErrMissingAuthHeader
	ErrInvalidToken      = core.ErrInvalidToken
	ErrSessionNotFound   = core.ErrSessionNotFound
	ErrSessionExpired    = core.ErrSessionExpired
	ErrCacheNotFound     = core.ErrCacheNotFound
)

var (
	ErrNameRequired            = core.ErrNameRequired
	ErrPasswordRequired        = core.ErrPasswordRequired
	ErrConfirmPasswordRequired = core.ErrConfirmPasswordRequired
	ErrRoleRequired            = core.ErrRoleRequired
	ErrPasswordMismatch        = core.ErrPasswordMismatch
	ErrInvalidRole             = core.ErrInvalidRole
	ErrInvalidStatus           = core.ErrInvalidStatus
)

var (
	ErrStorageRequired     = core.ErrStorageRequired
	ErrHTTPAdapterRequired = core.ErrHTTPAdapterRequired
)

// Config wires the ports together. Database and HTTP are mandatory; the
// rest default to sensible values.
type Config struct {
	Database AuthStorage

	HTTP HTTPAdapter

	// Optional config
	CacheAdapter   Cache
	DisableCache   bool
	SessionConfig  *SessionConfig
	PasswordHasher PasswordHandler
	BasePath       string
}

// Gatehouse is the assembled auth core.
type Gatehouse struct {
	Sessions *services.SessionManager
	Auth     *services.AuthService
	Accounts *services.Registrar
	BasePath string
}

var _ core.AuthProvider = (*Gatehouse)(nil)

func New(config Config) (*Gatehouse, error) {
	if config.Database == nil {
		return nil, ErrStorageRequired
	}
	if config.HTTP == nil {
		return nil, ErrHTTPAdapterRequired
	}

	// Set Defaults

	cacheAdapter := config.CacheAdapter
	if cacheAdapter == nil && !config.DisableCache {
		cacheAdapter = NewInMemoryCache(CacheConfig{
			TTL:     5 * time.Minute,
			MaxSize: 500,
		})
	}

	sessionConfig := config.SessionConfig
	if sessionConfig == nil {
		defaults := DefaultSessionConfig()
		sessionConfig = &defaults
	}

	passwordHasher := config.PasswordHasher
	if passwordHasher == nil {
		passwordHasher = crypto.NewArgon2()
	}

	basePath := config.BasePath
	if basePath == "" {
		basePath = defaultBasePath
	}

	sessionManager := services.NewSessionManager(*sessionConfig, config.Database, cacheAdapter)

	gh := &Gatehouse{
		Sessions: sessionManager,
		Auth:     services.NewAuthService(config.Database, sessionManager, passwordHasher),
		Accounts: services.NewRegistrar(config.Database, passwordHasher),
		BasePath: basePath,
	}

	if err := config.HTTP.RegisterRoutes(gh, basePath); err != nil {
		return nil, err
	}

	return gh, nil
}

// AuthProvider implementation, delegating to the services.

func (g *Gatehouse) Register(input RegisterInput) (*RegisterResult, error) {
	return g.Accounts.Register(input)
}

func (g *Gatehouse) Login(input LoginInput, ipAddress, userAgent string) (*LoginResult, error) {
	return g.Auth.Login(input, ipAddress, userAgent)
}

func (g *Gatehouse) Logout(token string) error {
	return g.Auth.Logout(token)
}

func (g *Gatehouse) GetSession(token string) (*SessionData, error) {
	return g.Auth.GetSession(token)
}
