package redis

import (
	"testing"
	"time"
)

func TestLoginLimiter_Defaults(t *testing.T) {
	l := NewLoginLimiter(nil, 0, 0)
	if l.max != 5 {
		t.Fatalf("expected default max 5, got %d", l.max)
	}
	if l.window != 15*time.Minute {
		t.Fatalf("expected default window 15m, got %v", l.window)
	}
}

func TestLoginLimiter_KeyStableWithinWindow(t *testing.T) {
	l := NewLoginLimiter(nil, 5, 15*time.Minute)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	k1 := l.key("203.0.113.7", base)
	k2 := l.key("203.0.113.7", base.Add(14*time.Minute))

	if k1 != k2 {
		t.Fatalf("keys within one window must match: %s vs %s", k1, k2)
	}
}

func TestLoginLimiter_KeyChangesAcrossWindows(t *testing.T) {
	l := NewLoginLimiter(nil, 5, 15*time.Minute)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	k1 := l.key("203.0.113.7", base)
	k2 := l.key("203.0.113.7", base.Add(16*time.Minute))

	if k1 == k2 {
		t.Fatalf("keys across windows must differ, both %s", k1)
	}
}

func TestLoginLimiter_KeySeparatesOrigins(t *testing.T) {
	l := NewLoginLimiter(nil, 5, 15*time.Minute)

	now := time.Now()
	if l.key("203.0.113.7", now) == l.key("203.0.113.8", now) {
		t.Fatalf("different origins must not share a key")
	}
}
