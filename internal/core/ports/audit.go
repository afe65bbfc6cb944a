package ports

import (
	"context"

	"github.com/vetcare/accounts-api/internal/core/domain"
)

// AuditRepository persists login events to the audit collection.
type AuditRepository interface {
	InsertLoginEvent(ctx context.Context, event *domain.LoginEvent) error
}

// AuditService processes a single login event.
type AuditService interface {
	Record(ctx context.Context, event domain.LoginEvent) error
}

// AuditSink is the transport-facing side of the audit pipeline: handlers
// enqueue events and return immediately, workers drain them.
type AuditSink interface {
	Enqueue(event domain.LoginEvent)
}
