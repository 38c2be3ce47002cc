package core

import "time"

// Account is the authoritative identity record for a login handle.
//
// Exactly one account exists per name; the name is the credential the
// client presents together with a password.
type Account struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	PasswordDigest string    `json:"-"` // Never expose in JSON
	Role           Role      `json:"role"`
	ProfileID      *string   `json:"profileId,omitempty"`
	Status         Status    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Session represents an active login session
type Session struct {
	ID        string    `json:"id"`
	AccountID string    `json:"accountId"`
	TokenHash string    `json:"-"` // Never expose in JSON (security!)
	IPAddress string    `json:"ipAddress"`
	UserAgent string    `json:"userAgent"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SessionData combines account and session info
// The model returned to clients
type SessionData struct {
	Account *Account `json:"account"`
	Session *Session `json:"session"`
}
