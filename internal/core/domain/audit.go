package domain

import "time"

// LoginEvent records one login attempt for the audit trail.
type LoginEvent struct {
	Email     string
	IP        string
	UserAgent string
	Success   bool
	Reason    string // "ok", "invalid_credentials", "locked", ...
	Timestamp time.Time
}
