package domain

import "time"

type AuditAction string

const (
	AuditRegister AuditAction = "register"
	AuditLogin    AuditAction = "login"
	AuditCreate   AuditAction = "create"
	AuditUpdate   AuditAction = "update"
	AuditDelete   AuditAction = "delete"
)

// AuditEvent is an append-only record of a change to, or sign-in of, a user.
// Details never carries credentials.
type AuditEvent struct {
	ID         string      `json:"id" bson:"_id"`
	Action     AuditAction `json:"action" bson:"action"`
	ActorID    int64       `json:"actorId" bson:"actor_id"`
	TargetID   int64       `json:"targetId" bson:"target_id"`
	Details    string      `json:"details,omitempty" bson:"details,omitempty"`
	OccurredAt time.Time   `json:"occurredAt" bson:"occurred_at"`
}
