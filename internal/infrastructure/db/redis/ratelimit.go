package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter counts login attempts per origin in fixed windows.
// Key format: loginlimit:<origin>:<window_start_unix>
type LoginLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
}

// NewLoginLimiter creates a limiter allowing max attempts per origin within
// each window.
func NewLoginLimiter(client *redis.Client, max int, window time.Duration) *LoginLimiter {
	if max <= 0 {
		max = 5
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginLimiter{client: client, max: max, window: window}
}

// Allow counts this attempt and reports whether the origin is still within
// budget. The key expires with the window, so a fresh window starts clean.
func (l *LoginLimiter) Allow(ctx context.Context, origin string) (bool, error) {
	key := l.key(origin, time.Now())

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}

	return incr.Val() <= int64(l.max), nil
}

func (l *LoginLimiter) key(origin string, now time.Time) string {
	windowStart := now.Unix() - now.Unix()%int64(l.window.Seconds())
	return fmt.Sprintf("loginlimit:%s:%d", origin, windowStart)
}
