package ports

import "github.com/vetcare/accounts-api/internal/core/domain"

// TokenIssuer mints a signed, time-bound bearer token for an account.
// The default implementation signs HS256 JWTs; an OAuth-backed issuer would
// satisfy the same interface.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}
