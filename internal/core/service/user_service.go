package service

import (
	"context"
	"encoding/hex"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/vetcare/accounts-api/internal/core/domain"
	"github.com/vetcare/accounts-api/internal/core/ports"
)

// emailPattern accepts the basic local@domain.tld shape; anything stricter is
// the mail provider's problem.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLength = 8

// UserService implements registration, login with account lockout, and the
// profile/admin account operations.
type UserService struct {
	repo    ports.UserRepository
	issuer  ports.TokenIssuer
	lockout domain.LockoutPolicy
	logger  zerolog.Logger
	now     func() time.Time
}

func NewUserService(repo ports.UserRepository, issuer ports.TokenIssuer, lockout domain.LockoutPolicy, logger zerolog.Logger) *UserService {
	return &UserService{
		repo:    repo,
		issuer:  issuer,
		lockout: lockout,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *UserService) Register(ctx context.Context, username, email, password, role string) (*ports.AuthResult, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, domain.ErrMissingFields
	}
	if !emailPattern.MatchString(email) {
		return nil, domain.ErrInvalidEmail
	}
	if role == "" {
		role = domain.RoleStandard
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}
	if !strongPassword(password) {
		return nil, domain.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.issuer.Issue(created)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role).Msg("user registered")
	return &ports.AuthResult{Token: token, User: created}, nil
}

// Login runs one authentication attempt end-to-end: lockout check, password
// verification, counter update, token issuance. Every attempt mutates and
// persists the account's lockout fields, even when the attempt fails.
func (s *UserService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.ErrMissingFields
	}
	if !emailPattern.MatchString(email) {
		return nil, domain.ErrInvalidEmail
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrUserNotFound {
			// Unknown emails and wrong passwords are indistinguishable to the caller.
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	now := s.now()

	// The lock check precedes password verification: a locked response must
	// not leak whether the supplied password was correct, and a locked
	// attempt does not advance the counter.
	if s.lockout.IsLocked(user, now) {
		return nil, &domain.AccountLockedError{Until: *user.LockUntil}
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		lockedUntil, recErr := s.repo.RecordFailedAttempt(ctx, user.ID, now, s.lockout)
		if recErr != nil {
			s.logger.Error().Err(recErr).Str("user_id", user.ID).Msg("failed to record login failure")
		}
		if lockedUntil != nil {
			s.logger.Warn().Str("user_id", user.ID).Time("lock_until", *lockedUntil).Msg("account locked")
			return nil, &domain.AccountLockedError{Until: *lockedUntil}
		}
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.repo.ResetLoginState(ctx, user.ID, now); err != nil {
		return nil, err
	}
	s.lockout.RecordSuccess(user, now)

	token, err := s.issuer.Issue(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("login successful")
	return &ports.AuthResult{Token: token, User: user}, nil
}

func (s *UserService) GetProfile(ctx context.Context, id string) (*domain.User, error) {
	if !validID(id) {
		return nil, domain.ErrInvalidID
	}
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) UpdateProfile(ctx context.Context, id string, input ports.UpdateProfileInput) (*ports.AuthResult, error) {
	if !validID(id) {
		return nil, domain.ErrInvalidID
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Username != "" {
		user.Username = strings.TrimSpace(input.Username)
	}
	if input.Email != "" {
		email := strings.TrimSpace(input.Email)
		if !emailPattern.MatchString(email) {
			return nil, domain.ErrInvalidEmail
		}
		user.Email = email
	}
	if input.Password != "" {
		if !strongPassword(input.Password) {
			return nil, domain.ErrWeakPassword
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = s.now()

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := s.issuer.Issue(updated)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, User: updated}, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if !validID(id) {
		return nil, domain.ErrInvalidID
	}
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) UpdateUser(ctx context.Context, id string, input ports.UpdateUserInput) (*domain.User, error) {
	if !validID(id) {
		return nil, domain.ErrInvalidID
	}
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Username != "" {
		user.Username = strings.TrimSpace(input.Username)
	}
	if input.Email != "" {
		email := strings.TrimSpace(input.Email)
		if !emailPattern.MatchString(email) {
			return nil, domain.ErrInvalidEmail
		}
		user.Email = email
	}
	if input.Role != "" {
		if !domain.ValidRole(input.Role) {
			return nil, domain.ErrInvalidRole
		}
		user.Role = input.Role
	}
	user.UpdatedAt = s.now()

	return s.repo.Update(ctx, user)
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrInvalidID
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

// MonthlySignupStats groups registrations from the last year by calendar month.
func (s *UserService) MonthlySignupStats(ctx context.Context) ([]domain.MonthlySignups, error) {
	since := s.now().AddDate(-1, 0, 0)
	return s.repo.MonthlySignupStats(ctx, since)
}

// validID reports whether id looks like a 12-byte object id in hex.
func validID(id string) bool {
	if len(id) != 24 {
		return false
	}
	_, err := hex.DecodeString(id)
	return err == nil
}

// strongPassword enforces the strict policy: minimum length plus at least one
// uppercase letter, lowercase letter, digit, and symbol.
func strongPassword(password string) bool {
	if len(password) < minPasswordLength {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}
