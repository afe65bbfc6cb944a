package domain

import (
	"errors"
	"time"
)

// Roles form a closed set; anything else is rejected at the boundary.
const (
	RoleStandard = "standard"
	RoleAdmin    = "admin"
	RoleEditor   = "editor"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrMissingFields = errors.New("missing fields")
var ErrInvalidEmail = errors.New("invalid email format")
var ErrInvalidRole = errors.New("invalid role")
var ErrWeakPassword = errors.New("password must be at least 8 characters long and include at least one uppercase letter, one lowercase letter, one number, and one special character")
var ErrInvalidID = errors.New("invalid user id")

// AccountLockedError is returned for any authentication attempt against a
// locked account. The lock check runs before password verification, so the
// response never reveals whether the supplied password was correct.
type AccountLockedError struct {
	Until time.Time
}

func (e *AccountLockedError) Error() string {
	return "account is locked, try again after " + e.Until.Format(time.RFC1123)
}

// ValidRole reports whether role belongs to the closed role set.
func ValidRole(role string) bool {
	return role == RoleStandard || role == RoleAdmin || role == RoleEditor
}

// User models a registered account: identity, credentials, role, and the
// lockout counters mutated on every login attempt.
type User struct {
	ID                  string     `json:"id"`
	Username            string     `json:"username"`
	Email               string     `json:"email"`
	PasswordHash        string     `json:"-"`
	Role                string     `json:"role"`
	FailedLoginAttempts int        `json:"-"`
	LockUntil           *time.Time `json:"-"`
	LastLoginAttempt    *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// IsAdmin exists for callers that still think in the legacy boolean flag.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
