package domain

import (
	"testing"
	"time"
)

func TestLockoutPolicy_Defaults(t *testing.T) {
	p := NewLockoutPolicy(0, 0)
	if p.Threshold != DefaultLockoutThreshold {
		t.Fatalf("expected threshold %d, got %d", DefaultLockoutThreshold, p.Threshold)
	}
	if p.Duration != DefaultLockoutDuration {
		t.Fatalf("expected duration %v, got %v", DefaultLockoutDuration, p.Duration)
	}
}

func TestLockoutPolicy_FailuresBelowThreshold(t *testing.T) {
	p := NewLockoutPolicy(8, 48*time.Hour)
	u := &User{}
	now := time.Now().UTC()

	for i := 1; i <= 7; i++ {
		if locked := p.RecordFailure(u, now); locked {
			t.Fatalf("attempt %d: unexpected lock", i)
		}
	}
	if u.FailedLoginAttempts != 7 {
		t.Fatalf("expected 7 failed attempts, got %d", u.FailedLoginAttempts)
	}
	if p.IsLocked(u, now) {
		t.Fatalf("account should not be locked below threshold")
	}
}

func TestLockoutPolicy_ThresholdLocksAndResetsCounter(t *testing.T) {
	p := NewLockoutPolicy(8, 48*time.Hour)
	u := &User{}
	now := time.Now().UTC()

	for i := 1; i <= 7; i++ {
		p.RecordFailure(u, now)
	}
	if locked := p.RecordFailure(u, now); !locked {
		t.Fatalf("8th failure should lock the account")
	}
	if u.FailedLoginAttempts != 0 {
		t.Fatalf("counter should reset to 0 on lock, got %d", u.FailedLoginAttempts)
	}
	if u.LockUntil == nil {
		t.Fatalf("lock_until should be set")
	}
	if want := now.Add(48 * time.Hour); !u.LockUntil.Equal(want) {
		t.Fatalf("expected lock until %v, got %v", want, u.LockUntil)
	}
	if !p.IsLocked(u, now) {
		t.Fatalf("account should be locked")
	}
}

func TestLockoutPolicy_LockExpires(t *testing.T) {
	p := NewLockoutPolicy(8, 48*time.Hour)
	u := &User{}
	now := time.Now().UTC()

	for i := 0; i < 8; i++ {
		p.RecordFailure(u, now)
	}
	if !p.IsLocked(u, now.Add(47*time.Hour)) {
		t.Fatalf("account should still be locked before expiry")
	}
	if p.IsLocked(u, now.Add(49*time.Hour)) {
		t.Fatalf("lock should have elapsed")
	}
}

func TestLockoutPolicy_SuccessResetsEverything(t *testing.T) {
	p := NewLockoutPolicy(8, 48*time.Hour)
	u := &User{}
	now := time.Now().UTC()

	for i := 0; i < 8; i++ {
		p.RecordFailure(u, now)
	}
	p.RecordSuccess(u, now)

	if u.FailedLoginAttempts != 0 {
		t.Fatalf("expected counter 0, got %d", u.FailedLoginAttempts)
	}
	if u.LockUntil != nil {
		t.Fatalf("expected lock cleared, got %v", u.LockUntil)
	}
	if u.LastLoginAttempt == nil || !u.LastLoginAttempt.Equal(now) {
		t.Fatalf("expected last attempt stamped")
	}
	if p.IsLocked(u, now) {
		t.Fatalf("account should be unlocked after success")
	}
}
