package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vetcare/accounts-api/internal/api/metrics"
	"github.com/vetcare/accounts-api/internal/core/domain"
	"github.com/vetcare/accounts-api/internal/core/ports"
)

// UserHandler handles HTTP requests for account operations.
type UserHandler struct {
	service ports.UserService
	audit   ports.AuditSink
}

// NewUserHandler wires the user service and the optional login-audit sink.
func NewUserHandler(service ports.UserService, audit ports.AuditSink) *UserHandler {
	return &UserHandler{service: service, audit: audit}
}

// Register creates a new account.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/users [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Register(c.Request().Context(), req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(result.User.Role).Inc()
	return c.JSON(http.StatusCreated, authResponse{
		Message: "User registered successfully",
		Token:   result.Token,
		User:    toUserView(result.User),
	})
}

// Login authenticates an account and returns a bearer token.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/users/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		reason := loginFailureReason(err)
		metrics.LoginsTotal.WithLabelValues(reason).Inc()
		if reason == "locked" {
			metrics.LockoutRejectionsTotal.Inc()
		}
		h.recordLogin(c, req.Email, false, reason)
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	h.recordLogin(c, req.Email, true, "ok")

	return c.JSON(http.StatusOK, authResponse{
		Message: "Login successful",
		Token:   result.Token,
		User:    toUserView(result.User),
	})
}

// GetProfile returns the authenticated account.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userView
// @Failure      401  {object}  errorResponse
// @Router       /api/users/profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserView(user))
}

// UpdateProfile updates the authenticated account and reissues a token.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.UpdateProfile(c.Request().Context(), user.ID, ports.UpdateProfileInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: result.Token, User: toUserView(result.User)})
}

// ListUsers returns all accounts. Admin only.
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserViews(users))
}

// GetUser returns one account by id. Admin only.
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.service.GetUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserView(user))
}

// UpdateUser updates handle, email, or role of an account. Admin only.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.UpdateUser(c.Request().Context(), c.Param("id"), ports.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserView(user))
}

// DeleteUser removes an account. Admin only.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	if err := h.service.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User removed"})
}

// Stats returns registrations-per-month for the last year. Admin only.
func (h *UserHandler) Stats(c echo.Context) error {
	stats, err := h.service.MonthlySignupStats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// recordLogin pushes a login event to the audit pipeline. Auditing is best
// effort and must never affect the response.
func (h *UserHandler) recordLogin(c echo.Context, email string, success bool, reason string) {
	if h.audit == nil {
		return
	}
	h.audit.Enqueue(domain.LoginEvent{
		Email:     email,
		IP:        c.RealIP(),
		UserAgent: c.Request().UserAgent(),
		Success:   success,
		Reason:    reason,
		Timestamp: time.Now().UTC(),
	})
}

func loginFailureReason(err error) string {
	var locked *domain.AccountLockedError
	switch {
	case errors.As(err, &locked):
		return "locked"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrMissingFields), errors.Is(err, domain.ErrInvalidEmail):
		return "validation"
	default:
		return "error"
	}
}
