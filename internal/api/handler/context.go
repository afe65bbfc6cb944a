package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vetcare/accounts-api/internal/api/middleware"
	"github.com/vetcare/accounts-api/internal/core/domain"
)

// ctxUser extracts the account attached by the Auth middleware. Its presence
// proves the middleware ran; a handler reached without it is a wiring bug and
// is reported as an authentication failure rather than a panic.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.ContextKeyUser).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "not authorized, no user found")
	}
	return user, nil
}
