package ports

import (
	"context"

	"github.com/vetcare/accounts-api/internal/core/domain"
)

// AuthResult is returned by operations that (re)issue a bearer token.
type AuthResult struct {
	Token string
	User  *domain.User
}

// UpdateProfileInput carries the self-service profile changes. Empty fields
// are left untouched.
type UpdateProfileInput struct {
	Username string
	Email    string
	Password string
}

// UpdateUserInput carries the admin-side account changes. Empty fields are
// left untouched.
type UpdateUserInput struct {
	Username string
	Email    string
	Role     string
}

// UserService defines the account use cases.
type UserService interface {
	Register(ctx context.Context, username, email, password, role string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)

	GetProfile(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) (*AuthResult, error)

	ListUsers(ctx context.Context) ([]*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
	MonthlySignupStats(ctx context.Context) ([]domain.MonthlySignups, error)
}
