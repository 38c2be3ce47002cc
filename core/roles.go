package core

// Role is the closed set of account classifications. Parsing happens once
// at the model boundary; everything downstream compares typed values.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// ParseRole maps a freeform role string to a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// Landing returns the post-login destination for the role. This mapping is
// the entirety of role-based authorization past login; no per-resource
// permission model sits behind it.
func (r Role) Landing() string {
	switch r {
	case RoleAdmin:
		return "admin-home"
	case RoleTeacher:
		return "teacher-home"
	case RoleStudent:
		return "student-home"
	default:
		return ""
	}
}

// RoleClaimMatches reports whether a caller-declared role claim matches the
// account's stored role. It must only be consulted after the password has
// verified, never on unauthenticated input.
func RoleClaimMatches(stored, claimed Role) bool {
	return stored == claimed
}

// Status is the closed set of account states.
type Status string

const (
	StatusActive   Status = "active"
	StatusDisabled Status = "disabled"
)

// ParseStatus maps a freeform status string to a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusActive, StatusDisabled:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusDisabled
}
