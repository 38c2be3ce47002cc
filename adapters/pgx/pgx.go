// Package pgx implements gatehouse.AuthStorage on a pgx connection pool.
//
// Expected schema:
//
//	CREATE TABLE accounts (
//	    id              TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
//	    name            TEXT NOT NULL UNIQUE,
//	    password_digest TEXT NOT NULL,
//	    role            TEXT NOT NULL,
//	    profile_id      TEXT,
//	    status          TEXT NOT NULL DEFAULT 'active',
//	    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
//
//	CREATE TABLE sessions (
//	    id         TEXT PRIMARY KEY,
//	    account_id TEXT NOT NULL REFERENCES accounts(id) ON DELETE CASCADE,
//	    token_hash TEXT NOT NULL UNIQUE,
//	    ip_address TEXT NOT NULL DEFAULT '',
//	    user_agent TEXT NOT NULL DEFAULT '',
//	    expires_at TIMESTAMPTZ NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL
//	);
//
// The UNIQUE constraint on accounts.name is what makes CreateAccount
// atomic; the adapter only classifies the resulting error.
package pgx

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mwhited/gatehouse"
)

type Adapter struct {
	pool *pgxpool.Pool
}

var _ gatehouse.AuthStorage = (*Adapter)(nil)

func New(pool *pgxpool.Pool) *Adapter {
	return &Adapter{
		pool: pool,
	}
}
