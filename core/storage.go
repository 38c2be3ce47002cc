package core

// CredentialStorage defines account-related database operations.
//
// CreateAccount must be atomic with respect to name uniqueness: two
// concurrent creates with the same name must not both succeed, and the
// loser observes ErrAccountExists. Implementations ride a storage-level
// unique constraint, never a read-then-write in application code.
//
// GetAccountByName returns the account regardless of status; filtering
// disabled accounts is the caller's decision.
type CredentialStorage interface {
	CreateAccount(a *Account) error

	GetAccountByName(name string) (*Account, error)
	GetAccountByID(id string) (*Account, error)

	// Partial mutations. No other fields are touched.
	UpdateAccountStatus(id string, status Status) error
	UpdateAccountRole(id string, role Role) error
	UpdateAccountPassword(id string, digest string) error
}

// SessionStorage defines session-related database operations
type SessionStorage interface {
	CreateSession(session *Session) error

	// Query methods
	GetSessionByHash(tokenHash string) (*Session, error)
	GetSessionByID(id string) (*Session, error)
	GetAccountSessions(accountID string) ([]*Session, error)

	// Delete methods
	DeleteSessionByID(id string) error
	DeleteSessionByHash(tokenHash string) error
	DeleteAccountSessions(accountID string) (int, error)

	// Cleanup
	DeleteExpiredSessions() (int, error)
}

type AuthStorage interface {
	CredentialStorage
	SessionStorage
}
