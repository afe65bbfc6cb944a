package domain

import "time"

const (
	DefaultLockoutThreshold = 8
	DefaultLockoutDuration  = 48 * time.Hour
)

// LockoutPolicy decides whether an authentication attempt may proceed and how
// the account's counters change on each outcome. It is pure decision logic:
// the caller persists the mutated fields.
type LockoutPolicy struct {
	Threshold int
	Duration  time.Duration
}

// NewLockoutPolicy returns a policy, substituting defaults for non-positive values.
func NewLockoutPolicy(threshold int, duration time.Duration) LockoutPolicy {
	if threshold <= 0 {
		threshold = DefaultLockoutThreshold
	}
	if duration <= 0 {
		duration = DefaultLockoutDuration
	}
	return LockoutPolicy{Threshold: threshold, Duration: duration}
}

// IsLocked reports whether the account is locked at the given instant.
func (p LockoutPolicy) IsLocked(u *User, now time.Time) bool {
	return u.LockUntil != nil && u.LockUntil.After(now)
}

// RecordFailure registers a failed attempt. When the counter reaches the
// threshold the account is locked for the configured duration, the counter
// resets to zero, and RecordFailure returns true.
func (p LockoutPolicy) RecordFailure(u *User, now time.Time) bool {
	u.FailedLoginAttempts++
	u.LastLoginAttempt = &now

	if u.FailedLoginAttempts >= p.Threshold {
		until := now.Add(p.Duration)
		u.LockUntil = &until
		u.FailedLoginAttempts = 0
		return true
	}
	return false
}

// RecordSuccess clears the failure counter and any lock.
func (p LockoutPolicy) RecordSuccess(u *User, now time.Time) {
	u.FailedLoginAttempts = 0
	u.LockUntil = nil
	u.LastLoginAttempt = &now
}
