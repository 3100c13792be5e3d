package memory

import (
	"context"
	"sync"

	"github.com/teamroster/user-admin/internal/core/domain"
)

const maxAuditEvents = 1000

// AuditRepository keeps the most recent audit events in a bounded slice.
type AuditRepository struct {
	mu     sync.RWMutex
	events []domain.AuditEvent
}

func NewAuditRepository() *AuditRepository {
	return &AuditRepository{}
}

func (r *AuditRepository) Record(_ context.Context, e domain.AuditEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, e)
	if over := len(r.events) - maxAuditEvents; over > 0 {
		r.events = append([]domain.AuditEvent(nil), r.events[over:]...)
	}
	return nil
}

// Recent returns up to limit events, newest first.
func (r *AuditRepository) Recent(_ context.Context, limit int) ([]domain.AuditEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.AuditEvent, 0, limit)
	for i := len(r.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.events[i])
	}
	return out, nil
}
