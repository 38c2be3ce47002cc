package services

import (
	"fmt"

	"github.com/mwhited/gatehouse/core"
	"github.com/mwhited/gatehouse/pkg/crypto"
)

// Registrar creates and administers accounts.
type Registrar struct {
	db        core.CredentialStorage
	passwords crypto.PasswordHandler
}

func NewRegistrar(db core.CredentialStorage, passwords crypto.PasswordHandler) *Registrar {
	return &Registrar{db: db, passwords: passwords}
}

// Register validates the input and creates a new active account.
//
// Uniqueness of the account name rides entirely on the storage layer's
// atomic create; there is no look-before-create here, so two concurrent
// registrations of the same name race safely and exactly one loses with
// ErrAccountExists.
func (r *Registrar) Register(input core.RegisterInput) (*core.RegisterResult, error) {
	if input.Name == "" {
		return nil, core.ErrNameRequired
	}
	if input.Password == "" {
		return nil, core.ErrPasswordRequired
	}
	if input.ConfirmPassword == "" {
		return nil, core.ErrConfirmPasswordRequired
	}
	if input.Role == "" {
		return nil, core.ErrRoleRequired
	}

	if input.Password != input.ConfirmPassword {
		return nil, core.ErrPasswordMismatch
	}

	role, err := core.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}

	digest, err := r.passwords.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// ProfileID stays unset; linking the role-specific profile record is a
	// separate administrative flow.
	account := &core.Account{
		Name:           input.Name,
		PasswordDigest: digest,
		Role:           role,
		Status:         core.StatusActive,
	}

	if err := r.db.CreateAccount(account); err != nil {
		if err == core.ErrAccountExists {
			return nil, core.ErrAccountExists
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	return &core.RegisterResult{Account: account}, nil
}

// SetStatus flips an account between active and disabled.
func (r *Registrar) SetStatus(accountID string, status core.Status) error {
	if !status.Valid() {
		return core.ErrInvalidStatus
	}
	return r.db.UpdateAccountStatus(accountID, status)
}

// SetRole rebinds an account to a different role.
func (r *Registrar) SetRole(accountID string, role core.Role) error {
	if !role.Valid() {
		return core.ErrInvalidRole
	}
	return r.db.UpdateAccountRole(accountID, role)
}

// ChangePassword replaces the account's digest with one derived from the
// new password.
func (r *Registrar) ChangePassword(accountID, newPassword string) error {
	if newPassword == "" {
		return core.ErrPasswordRequired
	}

	digest, err := r.passwords.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return r.db.UpdateAccountPassword(accountID, digest)
}
