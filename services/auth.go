package services

import (
	"errors"
	"fmt"

	"github.com/mwhited/gatehouse/core"
	"github.com/mwhited/gatehouse/pkg/crypto"
)

type AuthService struct {
	db        core.AuthStorage
	sessions  *SessionManager
	passwords crypto.PasswordHandler
}

func NewAuthService(db core.AuthStorage, sessions *SessionManager, passwords crypto.PasswordHandler) *AuthService {
	return &AuthService{
		db:        db,
		sessions:  sessions,
		passwords: passwords,
	}
}

// Login authenticates an account by name and password and, when the
// optional role claim is supplied, checks it against the stored role.
//
// The check order is deliberate: an unknown name and a wrong password
// produce the same ErrInvalidCredentials so the caller cannot enumerate
// accounts, a disabled account is only reported as disabled once the
// password has verified, and the role claim is only consulted after that.
// A role mismatch issues no session.
func (s *AuthService) Login(input core.LoginInput, ipAddress, userAgent string) (*core.LoginResult, error) {
	if input.Name == "" {
		return nil, core.ErrNameRequired
	}
	if input.Password == "" {
		return nil, core.ErrPasswordRequired
	}

	// Step 1: Find the account by name, regardless of status
	account, err := s.db.GetAccountByName(input.Name)
	if err != nil {
		if errors.Is(err, core.ErrAccountNotFound) {
			return nil, core.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	// Step 2: Verify the password
	valid, err := s.passwords.Verify(input.Password, account.PasswordDigest)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return nil, core.ErrInvalidCredentials
	}

	// Step 3: Status check. The password was correct, so the caller gets an
	// actionable answer instead of a generic credential failure.
	if account.Status == core.StatusDisabled {
		return nil, core.ErrAccountDisabled
	}

	// Step 4: Role claim binding
	if input.ClaimedRole != "" {
		claimed, err := core.ParseRole(input.ClaimedRole)
		if err != nil || !core.RoleClaimMatches(account.Role, claimed) {
			return nil, core.ErrRoleMismatch
		}
	}

	// Step 5: Issue the session
	created, err := s.sessions.Create(account.ID, ipAddress, userAgent)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &core.LoginResult{
		Account: account,
		Session: created.Session,
		Token:   created.Token,
		Landing: account.Role.Landing(),
	}, nil
}

// Logout invalidates the current session
func (s *AuthService) Logout(token string) error {
	if err := s.sessions.Destroy(token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// GetSession resolves a bearer token to its session and account.
func (s *AuthService) GetSession(token string) (*core.SessionData, error) {
	session, err := s.sessions.Verify(token)
	if err != nil {
		if errors.Is(err, core.ErrSessionNotFound) {
			return nil, core.ErrInvalidToken
		}
		return nil, err
	}

	account, err := s.db.GetAccountByID(session.AccountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	return &core.SessionData{
		Account: account,
		Session: session,
	}, nil
}
