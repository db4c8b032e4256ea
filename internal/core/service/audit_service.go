package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/soccerhub/account-service/internal/core/domain"
	"github.com/soccerhub/account-service/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists entries to the
// audit repository.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process persists a single audit entry.
func (s *auditService) Process(ctx context.Context, entry domain.AuditEntry) error {
	if err := s.repo.Insert(ctx, &entry); err != nil {
		return fmt.Errorf("audit entry: %w", err)
	}
	s.log.Debug().
		Int("account_id", entry.AccountID).
		Str("action", string(entry.Action)).
		Msg("audit entry recorded")
	return nil
}
