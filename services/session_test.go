package services

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/mwhited/gatehouse/core"
	"github.com/mwhited/gatehouse/pkg/crypto"
)

func newTestSessionManager(storage core.SessionStorage, cache core.Cache) *SessionManager {
	return NewSessionManager(DefaultSessionConfig(), storage, cache)
}

func TestSessionManagerCreate(t *testing.T) {
	t.Run("issues a token and persists only its hash", func(t *testing.T) {
		// Arrange
		storage := NewFakeAuthStorage()
		sm := newTestSessionManager(storage, nil)

		// Act
		result, err := sm.Create("acct-1", "192.168.1.10", "test-agent")

		// Assert
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if result.Token == "" {
			t.Fatal("Create() returned empty token")
		}
		if result.Session.TokenHash == result.Token {
			t.Error("session stores the raw token instead of its hash")
		}
		if result.Session.TokenHash != crypto.HashToken(result.Token) {
			t.Error("stored hash does not match the issued token")
		}
		if result.Session.AccountID != "acct-1" {
			t.Errorf("AccountID = %q, want %q", result.Session.AccountID, "acct-1")
		}
		if result.Session.IPAddress != "192.168.1.10" {
			t.Errorf("IPAddress = %q, want %q", result.Session.IPAddress, "192.168.1.10")
		}
		if storage.SessionCount() != 1 {
			t.Errorf("SessionCount() = %d, want 1", storage.SessionCount())
		}
	})

	t.Run("expiry honors configured max age", func(t *testing.T) {
		storage := NewFakeAuthStorage()
		sm := NewSessionManager(SessionConfig{MaxAge: 2 * time.Hour}, storage, nil)

		before := time.Now()
		result, err := sm.Create("acct-1", "", "")
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		want := before.Add(2 * time.Hour)
		if result.Session.ExpiresAt.Before(want) {
			t.Errorf("ExpiresAt = %v, want at least %v", result.Session.ExpiresAt, want)
		}
	})

	t.Run("storage failure returns error", func(t *testing.T) {
		storage := NewFakeAuthStorage()
		storage.createSessionErr = errors.New("connection refused")
		sm := newTestSessionManager(storage, nil)

		_, err := sm.Create("acct-1", "", "")
		if err == nil {
			t.Fatal("Create() succeeded despite storage failure")
		}
	})

	t.Run("tokens are unique across sessions", func(t *testing.T) {
		storage := NewFakeAuthStorage()
		sm := newTestSessionManager(storage, nil)

		seen := make(map[string]bool)
		for i := 0; i < 50; i++ {
			result, err := sm.Create("acct-1", "", "")
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if seen[result.Token] {
				t.Fatal("duplicate token issued")
			}
			seen[result.Token] = true
		}
	})
}

// Requirement: TokenHash must never be exposed in JSON responses.
func TestSessionManagerCreateTokenHashNotExposed(t *testing.T) {
	tests := []struct {
		name          string
		checkProperty func(map[string]interface{}) string // returns error message or empty string
	}{
		{
			name: "TokenHash not in JSON",
			checkProperty: func(m map[string]interface{}) string {
				if _, exists := m["tokenHash"]; exists {
					return "TokenHash exposed in JSON (security leak)"
				}
				return ""
			},
		},
		{
			name: "Token not in Session JSON",
			checkProperty: func(m map[string]interface{}) string {
				if _, exists := m["token"]; exists {
					return "Token should not be in Session JSON"
				}
				return ""
			},
		},
		{
			name: "required fields present",
			checkProperty: func(m map[string]interface{}) string {
				required := []string{"id", "accountId", "ipAddress", "userAgent", "expiresAt", "createdAt", "updatedAt"}
				for _, field := range required {
					if _, exists := m[field]; !exists {
						return "required field " + field + " missing"
					}
				}
				return ""
			},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			// Arrange
			sm := newTestSessionManager(NewFakeAuthStorage(), nil)

			// Act
			result, err := sm.Create("acct-1", "192.168.1.1", "Mozilla/5.0")

			// Assert
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}

			jsonBytes, err := json.Marshal(result.Session)
			if err != nil {
				t.Fatalf("json.Marshal() error = %v", err)
			}

			var sessionMap map[string]interface{}
			if err := json.Unmarshal(jsonBytes, &sessionMap); err != nil {
				t.Fatalf("json.Unmarshal() error = %v", err)
			}

			if errMsg := test.checkProperty(sessionMap); errMsg != "" {
				t.Error(errMsg)
			}
		})
	}
}

func TestSessionManagerVerify(t *testing.T) {
	t.Run("valid token resolves to its session", func(t *testing.T) {
		// Arrange
		storage := NewFakeAuthStorage()
		sm := newTestSessionManager(storage, nil)
		created, err := sm.Create("acct-1", "", "")
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		// Act
		session, err := sm.Verify(created.Token)

		// Assert
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		if session.ID != created.Session.ID {
			t.Errorf("session ID = %q, want %q", session.ID, created.Session.ID)
		}
	})

	t.Run("empty token", func(t *testing.T) {
		sm := newTestSessionManager(NewFakeAuthStorage(), nil)

		_, err := sm.Verify("")
		if !errors.Is(err, core.ErrInvalidToken) {
			t.Errorf("Verify(\"\") error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		sm := newTestSessionManager(NewFakeAuthStorage(), nil)

		_, err := sm.Verify("no-such-token")
		if !errors.Is(err, core.ErrSessionNotFound) {
			t.Errorf("Verify() error = %v, want ErrSessionNotFound", err)
		}
	})

	t.Run("expired session reads as expired", func(t *testing.T) {
		storage := NewFakeAuthStorage()
		sm := NewSessionManager(SessionConfig{MaxAge: time.Millisecond}, storage, nil)
		created, err := sm.Create("acct-1", "", "")
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		time.Sleep(5 * time.Millisecond)

		_, err = sm.Verify(created.Token)
		if !errors.Is(err, core.ErrSessionExpired) {
			t.Errorf("Verify() error = %v, want ErrSessionExpired", err)
		}
	})

	t.Run("expired session is evicted from cache", func(t *testing.T) {
		storage := NewFakeAuthStorage()
		cache := core.NewInMemoryCache(core.CacheConfig{TTL: time.Minute, MaxSize: 10})
		sm := NewSessionManager(SessionConfig{MaxAge: time.Millisecond}, storage, cache)
		created, err := sm.Create("acct-1", "", "")
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if cache.Len() != 1 {
			t.Fatalf("cache.Len() = %d after Create, want 1", cache.Len())
		}

		time.Sleep(5 * time.Millisecond)

		if _, err := sm.Verify(created.Token); !errors.Is(err, core.ErrSessionExpired) {
			t.Fatalf("Verify() error = %v, want ErrSessionExpired", err)
		}
		if cache.Len() != 0 {
			t.Errorf("cache.Len() = %d after expired Verify, want 0", cache.Len())
		}
	})

	t.Run("cache serves repeat verifications", func(t *testing.T) {
		storage := NewFakeAuthStorage()
		cache := core.NewInMemoryCache(core.CacheConfig{TTL: time.Minute, MaxSize: 10})
		sm := newTestSessionManager(storage, cache)
		created, err := sm.Create("acct-1", "", "")
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		// Create warms the cache, so even with storage failing the token
		// still verifies.
		storage.getSessionErr = errors.New("storage down")
		if _, err := sm.Verify(created.Token); err != nil {
			t.Errorf("Verify() error = %v, want cache hit", err)
		}
	})
}

func TestSessionManagerDestroy(t *testing.T) {
	t.Run("destroyed token no longer verifies", func(t *testing.T) {
		// Arrange
		storage := NewFakeAuthStorage()
		cache := core.NewInMemoryCache(core.CacheConfig{TTL: time.Minute, MaxSize: 10})
		sm := newTestSessionManager(storage, cache)
		created, err := sm.Create("acct-1", "", "")
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		// Act
		if err := sm.Destroy(created.Token); err != nil {
			t.Fatalf("Destroy() error = %v", err)
		}

		// Assert
		if _, err := sm.Verify(created.Token); !errors.Is(err, core.ErrSessionNotFound) {
			t.Errorf("Verify() after Destroy error = %v, want ErrSessionNotFound", err)
		}
		if storage.SessionCount() != 0 {
			t.Errorf("SessionCount() = %d, want 0", storage.SessionCount())
		}
	})

	t.Run("empty token", func(t *testing.T) {
		sm := newTestSessionManager(NewFakeAuthStorage(), nil)
		if err := sm.Destroy(""); !errors.Is(err, core.ErrInvalidToken) {
			t.Errorf("Destroy(\"\") error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("destroy by session ID invalidates cache entry", func(t *testing.T) {
		storage := NewFakeAuthStorage()
		cache := core.NewInMemoryCache(core.CacheConfig{TTL: time.Minute, MaxSize: 10})
		sm := newTestSessionManager(storage, cache)
		created, err := sm.Create("acct-1", "", "")
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		if err := sm.DestroyBySessionID(created.Session.ID); err != nil {
			t.Fatalf("DestroyBySessionID() error = %v", err)
		}

		if _, err := sm.Verify(created.Token); !errors.Is(err, core.ErrSessionNotFound) {
			t.Errorf("Verify() after DestroyBySessionID error = %v, want ErrSessionNotFound", err)
		}
	})
}

func TestSessionManagerDestroyAllAccountSessions(t *testing.T) {
	t.Run("removes every session for the account and none for others", func(t *testing.T) {
		// Arrange
		storage := NewFakeAuthStorage()
		sm := newTestSessionManager(storage, nil)
		for i := 0; i < 3; i++ {
			if _, err := sm.Create("acct-1", "", ""); err != nil {
				t.Fatalf("Create() error = %v", err)
			}
		}
		other, err := sm.Create("acct-2", "", "")
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		// Act
		count, err := sm.DestroyAllAccountSessions("acct-1")

		// Assert
		if err != nil {
			t.Fatalf("DestroyAllAccountSessions() error = %v", err)
		}
		if count != 3 {
			t.Errorf("count = %d, want 3", count)
		}
		if _, err := sm.Verify(other.Token); err != nil {
			t.Errorf("unrelated session was destroyed: %v", err)
		}
	})

	t.Run("empty account ID", func(t *testing.T) {
		sm := newTestSessionManager(NewFakeAuthStorage(), nil)
		if _, err := sm.DestroyAllAccountSessions(""); !errors.Is(err, core.ErrAccountNotFound) {
			t.Errorf("DestroyAllAccountSessions(\"\") error = %v, want ErrAccountNotFound", err)
		}
	})
}

func TestSessionManagerPruneExpired(t *testing.T) {
	// Arrange
	storage := NewFakeAuthStorage()
	expired := NewSessionManager(SessionConfig{MaxAge: time.Millisecond}, storage, nil)
	live := newTestSessionManager(storage, nil)

	for i := 0; i < 2; i++ {
		if _, err := expired.Create("acct-1", "", ""); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}
	if _, err := live.Create("acct-1", "", ""); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	// Act
	count, err := live.PruneExpired()

	// Assert
	if err != nil {
		t.Fatalf("PruneExpired() error = %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if storage.SessionCount() != 1 {
		t.Errorf("SessionCount() = %d, want 1", storage.SessionCount())
	}
}
