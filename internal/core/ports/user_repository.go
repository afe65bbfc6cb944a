package ports

import (
	"context"
	"time"

	"github.com/vetcare/accounts-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error

	// RecordFailedAttempt registers a failed login: the counter increment is
	// issued as a single atomic update so concurrent failures cannot
	// under-count, and the policy's lock is applied when the new count
	// reaches the threshold. Returns the lock expiry when a lock was applied.
	RecordFailedAttempt(ctx context.Context, id string, now time.Time, policy domain.LockoutPolicy) (*time.Time, error)

	// ResetLoginState clears the failure counter and any lock after a
	// successful authentication.
	ResetLoginState(ctx context.Context, id string, now time.Time) error

	// MonthlySignupStats groups accounts created since the given instant by
	// calendar month of creation.
	MonthlySignupStats(ctx context.Context, since time.Time) ([]domain.MonthlySignups, error)
}
