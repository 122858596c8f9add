package assigner

import (
	"context"

	"tech-assigner/internal/domain"
	"tech-assigner/internal/session"
)

// Gateway abstracts the platform backend's assigner REST surface.
type Gateway interface {
	OrdersForAssignment(ctx context.Context, sess session.Session) ([]domain.WorkItem, error)
	RepairsForAssignment(ctx context.Context, sess session.Session) ([]domain.WorkItem, error)
	AssignmentLog(ctx context.Context, sess session.Session, kind domain.Kind, deliveryID string) ([]domain.AssignmentLogEntry, error)
	DeliveryAgents(ctx context.Context, sess session.Session) ([]domain.DeliveryAgent, error)

	AssignOrder(ctx context.Context, sess session.Session, orderID, deliveryID, notes string) error
	AssignRepair(ctx context.Context, sess session.Session, repairID, deliveryID, notes string) error
	ReassignOrder(ctx context.Context, sess session.Session, orderID, newDeliveryID, notes string) error
	ReassignRepair(ctx context.Context, sess session.Session, repairID, newDeliveryID, notes string) error
}

// AuditRecorder appends assignment actions to the local audit trail.
type AuditRecorder interface {
	Record(ctx context.Context, a domain.AssignmentAction) error
}

type counter interface {
	Inc()
}
