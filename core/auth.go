package core

// RegisterInput contains the data needed to create a new account
type RegisterInput struct {
	Name            string `json:"name"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            string `json:"role"`
}

// RegisterResult contains the newly created account.
//
// Registration deliberately does not issue a session and does not link a
// role-specific profile record; ProfileID stays unset until an
// administrative flow fills it.
type RegisterResult struct {
	Account *Account `json:"account"`
}

// LoginInput contains the credentials for authentication. ClaimedRole is
// the optional role the client asserts about itself (e.g. a form field);
// when present it must match the account's stored role.
type LoginInput struct {
	Name        string `json:"name"`
	Password    string `json:"password"`
	ClaimedRole string `json:"role,omitempty"`
}

// LoginResult contains the authenticated account, its new session, the raw
// bearer token (not the hash) and the role-bound landing destination.
type LoginResult struct {
	Account *Account `json:"account"`
	Session *Session `json:"session"`
	Token   string   `json:"token"`
	Landing string   `json:"landing"`
}

// AuthProvider provides authentication operations for HTTP adapters
type AuthProvider interface {
	Register(input RegisterInput) (*RegisterResult, error)
	Login(input LoginInput, ipAddress, userAgent string) (*LoginResult, error)
	Logout(token string) error
	GetSession(token string) (*SessionData, error)
}
