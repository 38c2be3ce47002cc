package services

import (
	"time"

	"github.com/mwhited/gatehouse/core"
	"github.com/mwhited/gatehouse/pkg/crypto"
)

type SessionConfig struct {
	MaxAge time.Duration
}

// DefaultSessionConfig returns the stock one-hour session lifetime.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		MaxAge: time.Hour,
	}
}

type SessionManager struct {
	config  SessionConfig
	storage core.SessionStorage
	cache   core.Cache // optional, can be nil if caching is disabled
	nanoid  *crypto.NanoIDGenerator
}

type CreateSessionResult struct {
	Session *core.Session `json:"session"`
	Token   string        `json:"token"`
}

func NewSessionManager(config SessionConfig, storage core.SessionStorage, cache core.Cache) *SessionManager {
	if config.MaxAge == 0 {
		config = DefaultSessionConfig()
	}
	nanoid, _ := crypto.NewNanoID()
	return &SessionManager{config: config, storage: storage, cache: cache, nanoid: nanoid}
}

// Create issues a session for the account: an unpredictable 256-bit bearer
// token whose SHA-256 hash is what actually gets stored.
func (sm *SessionManager) Create(accountID, ip, userAgent string) (*CreateSessionResult, error) {
	pair, err := crypto.GenerateHashedToken()
	if err != nil {
		return nil, err
	}

	sessionID, err := sm.nanoid.Generate()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &core.Session{
		ID:        sessionID,
		AccountID: accountID,
		TokenHash: pair.Hash,
		IPAddress: ip,
		UserAgent: userAgent,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(sm.config.MaxAge),
	}

	if err := sm.storage.CreateSession(session); err != nil {
		return nil, err
	}

	// Cache session if caching is enabled (cache is non-nil)
	if sm.cache != nil {
		// We don't fail the request if caching fails
		_ = sm.cache.Set(pair.Hash, session)
	}

	return &CreateSessionResult{Session: session, Token: pair.Token}, nil
}

// Verify resolves a raw token to its session. Expiry is enforced lazily
// here; an expired session reads as absent and is evicted from the cache.
func (sm *SessionManager) Verify(token string) (*core.Session, error) {
	if token == "" {
		return nil, core.ErrInvalidToken
	}

	tokenHash := crypto.HashToken(token)

	// Try cache first if caching is enabled
	if sm.cache != nil {
		if session, err := sm.cache.Get(tokenHash); err == nil && session != nil {
			if time.Now().After(session.ExpiresAt) {
				_ = sm.cache.Delete(tokenHash)
				return nil, core.ErrSessionExpired
			}
			return session, nil
		}
		// Cache miss - fall through to storage
	}

	session, err := sm.storage.GetSessionByHash(tokenHash)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, core.ErrSessionNotFound
	}

	if time.Now().After(session.ExpiresAt) {
		return nil, core.ErrSessionExpired
	}

	// Cache the session for future requests if caching is enabled
	if sm.cache != nil {
		_ = sm.cache.Set(tokenHash, session)
	}

	return session, nil
}

// Destroy is the explicit logout path: immediate invalidation.
func (sm *SessionManager) Destroy(token string) error {
	if token == "" {
		return core.ErrInvalidToken
	}

	tokenHash := crypto.HashToken(token)

	if err := sm.storage.DeleteSessionByHash(tokenHash); err != nil {
		return err
	}

	if sm.cache != nil {
		_ = sm.cache.Delete(tokenHash)
	}

	return nil
}

func (sm *SessionManager) DestroyBySessionID(sessionID string) error {
	if sessionID == "" {
		return core.ErrSessionNotFound
	}

	// Get session first to obtain tokenHash for cache invalidation
	if sm.cache != nil {
		session, err := sm.storage.GetSessionByID(sessionID)
		if err == nil && session != nil {
			_ = sm.cache.Delete(session.TokenHash)
		}
	}

	return sm.storage.DeleteSessionByID(sessionID)
}

func (sm *SessionManager) DestroyAllAccountSessions(accountID string) (int, error) {
	if accountID == "" {
		return 0, core.ErrAccountNotFound
	}

	count, err := sm.storage.DeleteAccountSessions(accountID)
	if err != nil {
		return 0, err
	}

	// Clearing the whole cache is the conservative choice; being selective
	// would require fetching every account session first, which defeats the
	// point of the cache.
	if sm.cache != nil && count > 0 {
		_ = sm.cache.Clear()
	}

	return count, nil
}

// PruneExpired removes expired sessions from storage. Expiry is already
// enforced lazily on Verify, so this only bounds storage growth.
func (sm *SessionManager) PruneExpired() (int, error) {
	return sm.storage.DeleteExpiredSessions()
}
