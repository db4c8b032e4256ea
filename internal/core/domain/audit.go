package domain

import "time"

// AuditAction identifies the kind of account mutation being recorded.
type AuditAction string

const (
	AuditAccountCreated AuditAction = "account_created"
	AuditAccountUpdated AuditAction = "account_updated"
)

// AuditEntry records a single account mutation for the audit trail.
type AuditEntry struct {
	AccountID int
	Email     string
	Action    AuditAction
	Actor     string // email of the caller that performed the change
	Timestamp time.Time
}
