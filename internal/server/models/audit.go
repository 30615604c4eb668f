package models

import "time"

// LoginAuditEntry records one login attempt. Entries are append-only.
type LoginAuditEntry struct {
	ID        int64
	UserName  string
	Success   bool
	CreatedAt time.Time
}
