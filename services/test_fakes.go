package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/mwhited/gatehouse/core"
)

// FakeAuthStorage is a test-only fake implementing core.AuthStorage. It
// stores records in maps and exposes error fields for behavior injection.
// Name uniqueness is enforced under the same lock as the insert, mirroring
// the atomicity a real storage constraint provides.
type FakeAuthStorage struct {
	mu       sync.RWMutex
	accounts map[string]*core.Account // key: account ID
	sessions map[string]*core.Session // key: token hash
	nextID   int

	createAccountErr error
	getAccountErr    error
	createSessionErr error
	getSessionErr    error
	deleteSessionErr error
}

var _ core.AuthStorage = (*FakeAuthStorage)(nil)

func NewFakeAuthStorage() *FakeAuthStorage {
	return &FakeAuthStorage{
		accounts: make(map[string]*core.Account),
		sessions: make(map[string]*core.Session),
	}
}

// CredentialStorage methods

func (f *FakeAuthStorage) CreateAccount(a *core.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createAccountErr != nil {
		return f.createAccountErr
	}

	for _, existing := range f.accounts {
		if existing.Name == a.Name {
			return core.ErrAccountExists
		}
	}

	f.nextID++
	if a.ID == "" {
		a.ID = fmt.Sprintf("acct-%d", f.nextID)
	}
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	copied := *a
	f.accounts[a.ID] = &copied
	return nil
}

func (f *FakeAuthStorage) GetAccountByName(name string) (*core.Account, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getAccountErr != nil {
		return nil, f.getAccountErr
	}
	for _, a := range f.accounts {
		if a.Name == name {
			copied := *a
			return &copied, nil
		}
	}
	return nil, core.ErrAccountNotFound
}

func (f *FakeAuthStorage) GetAccountByID(id string) (*core.Account, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getAccountErr != nil {
		return nil, f.getAccountErr
	}
	a, ok := f.accounts[id]
	if !ok {
		return nil, core.ErrAccountNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *FakeAuthStorage) UpdateAccountStatus(id string, status core.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok {
		return core.ErrAccountNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	return nil
}

func (f *FakeAuthStorage) UpdateAccountRole(id string, role core.Role) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok {
		return core.ErrAccountNotFound
	}
	a.Role = role
	a.UpdatedAt = time.Now()
	return nil
}

func (f *FakeAuthStorage) UpdateAccountPassword(id string, digest string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[id]
	if !ok {
		return core.ErrAccountNotFound
	}
	a.PasswordDigest = digest
	a.UpdatedAt = time.Now()
	return nil
}

// AccountCount reports how many accounts exist; used to assert that failed
// registrations leave no partial record behind.
func (f *FakeAuthStorage) AccountCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.accounts)
}

// SessionStorage methods

func (f *FakeAuthStorage) CreateSession(s *core.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createSessionErr != nil {
		return f.createSessionErr
	}
	f.sessions[s.TokenHash] = s
	return nil
}

func (f *FakeAuthStorage) GetSessionByHash(tokenHash string) (*core.Session, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getSessionErr != nil {
		return nil, f.getSessionErr
	}
	s, ok := f.sessions[tokenHash]
	if !ok {
		return nil, core.ErrSessionNotFound
	}
	return s, nil
}

func (f *FakeAuthStorage) GetSessionByID(id string) (*core.Session, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, s := range f.sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, core.ErrSessionNotFound
}

func (f *FakeAuthStorage) GetAccountSessions(accountID string) ([]*core.Session, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []*core.Session
	for _, s := range f.sessions {
		if s.AccountID == accountID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *FakeAuthStorage) DeleteSessionByID(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k, s := range f.sessions {
		if s.ID == id {
			delete(f.sessions, k)
			return nil
		}
	}
	return nil
}

func (f *FakeAuthStorage) DeleteSessionByHash(tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteSessionErr != nil {
		return f.deleteSessionErr
	}
	delete(f.sessions, tokenHash)
	return nil
}

func (f *FakeAuthStorage) DeleteAccountSessions(accountID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for k, s := range f.sessions {
		if s.AccountID == accountID {
			delete(f.sessions, k)
			count++
		}
	}
	return count, nil
}

func (f *FakeAuthStorage) DeleteExpiredSessions() (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	now := time.Now()
	for k, s := range f.sessions {
		if now.After(s.ExpiresAt) {
			delete(f.sessions, k)
			count++
		}
	}
	return count, nil
}

// SessionCount reports how many live session records exist.
func (f *FakeAuthStorage) SessionCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.sessions)
}
