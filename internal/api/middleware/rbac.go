package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vetcare/accounts-api/internal/core/domain"
)

// RBAC restricts a route to the given roles. It requires Auth to have run
// first; a request with no attached account is unauthorized, a request whose
// role is outside the allowed set is forbidden with the denied role named.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(ContextKeyUser).(*domain.User)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized, no user found")
			}
			if _, ok := allowed[user.Role]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, fmt.Sprintf("access denied for role: %s", user.Role))
			}
			return next(c)
		}
	}
}
