package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vetcare/accounts-api/internal/api/metrics"
	"github.com/vetcare/accounts-api/internal/core/ports"
)

const rateLimitMessage = "Too many login attempts, please try again after 15 minutes"

// LoginRateLimit caps login attempts per client IP. It runs before any
// credential handling and never touches account state; the counting itself is
// delegated to the limiter. A limiter error fails open so a Redis outage does
// not take logins down with it.
func LoginRateLimit(limiter ports.Limiter, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			origin := c.RealIP()

			ok, err := limiter.Allow(c.Request().Context(), origin)
			if err != nil {
				log.Warn().Err(err).Str("origin", origin).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}
			if !ok {
				metrics.LoginThrottledTotal.Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, rateLimitMessage)
			}
			return next(c)
		}
	}
}
