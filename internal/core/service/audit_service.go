package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/teamroster/user-admin/internal/core/domain"
	"github.com/teamroster/user-admin/internal/core/ports"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

// AuditService exposes the audit trail to administrators.
type AuditService struct {
	repo ports.AuditRepository
}

func NewAuditService(repo ports.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

// Recent returns the newest events first. limit is clamped to 1..200 and
// defaults to 50.
func (s *AuditService) Recent(ctx context.Context, actor domain.Actor, limit int) ([]domain.AuditEvent, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, denied("audit", domain.NewError(domain.ErrForbidden, "Access denied. Admin privileges required."))
	}
	switch {
	case limit <= 0:
		limit = defaultAuditLimit
	case limit > maxAuditLimit:
		limit = maxAuditLimit
	}
	return s.repo.Recent(ctx, limit)
}

func newAuditEvent(action domain.AuditAction, actorID, targetID int64, details string) domain.AuditEvent {
	return domain.AuditEvent{
		ID:         uuid.NewString(),
		Action:     action,
		ActorID:    actorID,
		TargetID:   targetID,
		Details:    details,
		OccurredAt: time.Now().UTC(),
	}
}

type nopAudit struct{}

func (nopAudit) Publish(domain.AuditEvent) {}
