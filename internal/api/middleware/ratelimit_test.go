package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type stubLimiter struct {
	max  int
	seen map[string]int
	err  error
}

func newStubLimiter(max int) *stubLimiter {
	return &stubLimiter{max: max, seen: make(map[string]int)}
}

func (s *stubLimiter) Allow(_ context.Context, origin string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	s.seen[origin]++
	return s.seen[origin] <= s.max, nil
}

func doLogin(e *echo.Echo, mw echo.MiddlewareFunc) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/users/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestLoginRateLimit_AllowsWithinBudget(t *testing.T) {
	e := echo.New()
	mw := LoginRateLimit(newStubLimiter(5), zerolog.Nop())

	for i := 1; i <= 5; i++ {
		rec := doLogin(e, mw)
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}
}

func TestLoginRateLimit_RejectsSixthAttempt(t *testing.T) {
	e := echo.New()
	limiter := newStubLimiter(5)
	mw := LoginRateLimit(limiter, zerolog.Nop())

	for i := 1; i <= 5; i++ {
		doLogin(e, mw)
	}

	rec := doLogin(e, mw)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "Too many login attempts") {
		t.Fatalf("expected fixed rate-limit message, got %q", body)
	}
}

func TestLoginRateLimit_WindowResetAllowsAgain(t *testing.T) {
	e := echo.New()
	limiter := newStubLimiter(5)
	mw := LoginRateLimit(limiter, zerolog.Nop())

	for i := 1; i <= 6; i++ {
		doLogin(e, mw)
	}

	// A fresh window starts clean.
	limiter.seen = make(map[string]int)
	rec := doLogin(e, mw)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 after window reset, got %d", rec.Code)
	}
}

func TestLoginRateLimit_FailsOpenOnLimiterError(t *testing.T) {
	e := echo.New()
	limiter := newStubLimiter(5)
	limiter.err = errors.New("redis down")
	mw := LoginRateLimit(limiter, zerolog.Nop())

	rec := doLogin(e, mw)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 when limiter unavailable, got %d", rec.Code)
	}
}
