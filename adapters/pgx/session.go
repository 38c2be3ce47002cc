package pgx

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mwhited/gatehouse"
)

func (a *Adapter) CreateSession(session *gatehouse.Session) error {
	ctx := context.Background()

	query := `INSERT INTO public.sessions (id, account_id, token_hash, ip_address, user_agent, expires_at, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := a.pool.Exec(ctx, query,
		session.ID,
		session.AccountID,
		session.TokenHash,
		session.IPAddress,
		session.UserAgent,
		session.ExpiresAt,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

const sessionColumns = `id, account_id, token_hash, ip_address, user_agent, expires_at, created_at, updated_at`

func (a *Adapter) scanSession(row pgx.Row) (*gatehouse.Session, error) {
	session := &gatehouse.Session{}
	err := row.Scan(
		&session.ID,
		&session.AccountID,
		&session.TokenHash,
		&session.IPAddress,
		&session.UserAgent,
		&session.ExpiresAt,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, gatehouse.ErrSessionNotFound
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}
	return session, nil
}

func (a *Adapter) GetSessionByHash(tokenHash string) (*gatehouse.Session, error) {
	ctx := context.Background()
	q := `SELECT ` + sessionColumns + ` FROM public.sessions WHERE token_hash = $1`
	return a.scanSession(a.pool.QueryRow(ctx, q, tokenHash))
}

func (a *Adapter) GetSessionByID(id string) (*gatehouse.Session, error) {
	ctx := context.Background()
	q := `SELECT ` + sessionColumns + ` FROM public.sessions WHERE id = $1`
	return a.scanSession(a.pool.QueryRow(ctx, q, id))
}

func (a *Adapter) GetAccountSessions(accountID string) ([]*gatehouse.Session, error) {
	ctx := context.Background()
	q := `SELECT ` + sessionColumns + ` FROM public.sessions WHERE account_id = $1 ORDER BY created_at DESC`

	rows, err := a.pool.Query(ctx, q, accountID)
	if err != nil {
		return nil, fmt.Errorf("get account sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*gatehouse.Session
	for rows.Next() {
		session, err := a.scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get account sessions: %w", err)
	}
	return sessions, nil
}

func (a *Adapter) DeleteSessionByID(id string) error {
	ctx := context.Background()
	_, err := a.pool.Exec(ctx, `DELETE FROM public.sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (a *Adapter) DeleteSessionByHash(tokenHash string) error {
	ctx := context.Background()
	_, err := a.pool.Exec(ctx, `DELETE FROM public.sessions WHERE token_hash = $1`, tokenHash)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (a *Adapter) DeleteAccountSessions(accountID string) (int, error) {
	ctx := context.Background()
	ct, err := a.pool.Exec(ctx, `DELETE FROM public.sessions WHERE account_id = $1`, accountID)
	if err != nil {
		return 0, fmt.Errorf("delete account sessions: %w", err)
	}
	return int(ct.RowsAffected()), nil
}

func (a *Adapter) DeleteExpiredSessions() (int, error) {
	ctx := context.Background()
	ct, err := a.pool.Exec(ctx, `DELETE FROM public.sessions WHERE expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return int(ct.RowsAffected()), nil
}
