package ports

import (
	"context"

	"github.com/teamroster/user-admin/internal/core/domain"
)

// AuditPublisher hands an event off for asynchronous persistence. It must
// not block the request path.
type AuditPublisher interface {
	Publish(event domain.AuditEvent)
}

type AuditRepository interface {
	Record(ctx context.Context, event domain.AuditEvent) error
	Recent(ctx context.Context, limit int) ([]domain.AuditEvent, error)
}

type AuditService interface {
	Recent(ctx context.Context, actor domain.Actor, limit int) ([]domain.AuditEvent, error)
}
