package pgx

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mwhited/gatehouse"
)

func (a *Adapter) CreateAccount(account *gatehouse.Account) error {
	ctx := context.Background()

	query := `INSERT INTO public.accounts (name, password_digest, role, profile_id, status)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at, updated_at`

	err := a.pool.QueryRow(ctx, query,
		account.Name,
		account.PasswordDigest,
		string(account.Role),
		account.ProfileID,
		string(account.Status),
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		// Duplicate names are detected by error code, never by matching on
		// driver message text.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return gatehouse.ErrAccountExists
		}
		return fmt.Errorf("create account: %w", err)
	}

	return nil
}

const accountColumns = `id, name, password_digest, role, profile_id, status, created_at, updated_at`

func (a *Adapter) scanAccount(row pgx.Row) (*gatehouse.Account, error) {
	account := &gatehouse.Account{}
	var role, status string
	var profileID *string

	err := row.Scan(
		&account.ID,
		&account.Name,
		&account.PasswordDigest,
		&role,
		&profileID,
		&status,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, gatehouse.ErrAccountNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}

	// Closed sets are enforced once, at the storage boundary.
	account.Role, err = gatehouse.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", account.ID, err)
	}
	account.Status, err = gatehouse.ParseStatus(status)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", account.ID, err)
	}
	account.ProfileID = profileID

	return account, nil
}

// GetAccountByName fetches the account regardless of status; status
// filtering is the caller's decision.
func (a *Adapter) GetAccountByName(name string) (*gatehouse.Account, error) {
	ctx := context.Background()
	q := `SELECT ` + accountColumns + ` FROM public.accounts WHERE name = $1`
	return a.scanAccount(a.pool.QueryRow(ctx, q, name))
}

func (a *Adapter) GetAccountByID(id string) (*gatehouse.Account, error) {
	ctx := context.Background()
	q := `SELECT ` + accountColumns + ` FROM public.accounts WHERE id = $1`
	return a.scanAccount(a.pool.QueryRow(ctx, q, id))
}

func (a *Adapter) UpdateAccountStatus(id string, status gatehouse.Status) error {
	ctx := context.Background()
	q := `UPDATE public.accounts SET status = $1, updated_at = now() WHERE id = $2`
	ct, err := a.pool.Exec(ctx, q, string(status), id)
	if err != nil {
		return fmt.Errorf("update account status: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return gatehouse.ErrAccountNotFound
	}
	return nil
}

func (a *Adapter) UpdateAccountRole(id string, role gatehouse.Role) error {
	ctx := context.Background()
	q := `UPDATE public.accounts SET role = $1, updated_at = now() WHERE id = $2`
	ct, err := a.pool.Exec(ctx, q, string(role), id)
	if err != nil {
		return fmt.Errorf("update account role: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return gatehouse.ErrAccountNotFound
	}
	return nil
}

func (a *Adapter) UpdateAccountPassword(id string, digest string) error {
	ctx := context.Background()
	q := `UPDATE public.accounts SET password_digest = $1, updated_at = now() WHERE id = $2`
	ct, err := a.pool.Exec(ctx, q, digest, id)
	if err != nil {
		return fmt.Errorf("update account password: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return gatehouse.ErrAccountNotFound
	}
	return nil
}
