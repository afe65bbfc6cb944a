package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vetcare/accounts-api/internal/core/domain"
	"github.com/vetcare/accounts-api/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists login events to the
// audit trail.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

func (s *auditService) Record(ctx context.Context, event domain.LoginEvent) error {
	if err := s.repo.InsertLoginEvent(ctx, &event); err != nil {
		return fmt.Errorf("record login event: %w", err)
	}

	s.log.Debug().
		Str("email", event.Email).
		Str("ip", event.IP).
		Bool("success", event.Success).
		Str("reason", event.Reason).
		Msg("login event recorded")

	return nil
}
