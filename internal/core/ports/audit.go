package ports

import (
	"context"

	"github.com/soccerhub/account-service/internal/core/domain"
)

// AuditRecorder accepts audit entries for asynchronous persistence.
// Record must not block request handling beyond queue capacity.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}

// AuditService persists a single audit entry.
type AuditService interface {
	Process(ctx context.Context, entry domain.AuditEntry) error
}

// AuditRepository defines persistence for the audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
}

// AuditReader lists the recorded audit trail of one account, oldest first.
type AuditReader interface {
	FindByAccount(ctx context.Context, accountID int) ([]domain.AuditEntry, error)
}
