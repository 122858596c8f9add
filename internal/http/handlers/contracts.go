package handlers

import (
	"context"

	"tech-assigner/internal/domain"
	"tech-assigner/internal/repository"
	"tech-assigner/internal/service/assigner"
	"tech-assigner/internal/session"
)

type consoleUsecase interface {
	Snapshot(ctx context.Context, sess session.Session, kind domain.Kind, deliveryID string) ([]domain.WorkItem, error)
	Agents(ctx context.Context, sess session.Session) ([]domain.DeliveryAgent, error)
	Assign(ctx context.Context, sess session.Session, kind domain.Kind, workItemID, deliveryID, notes string) error
	Reassign(ctx context.Context, sess session.Session, kind domain.Kind, workItemID, newDeliveryID, notes string) error
}

// NewConsoleUsecase wires the assigner service into a consoleUsecase.
func NewConsoleUsecase(svc *assigner.Service) consoleUsecase {
	return svc
}

type auditReader interface {
	List(ctx context.Context, limit int) ([]domain.AssignmentAction, error)
	ListByWorkItem(ctx context.Context, workItemID string) ([]domain.AssignmentAction, error)
}

// NewAuditReader wires the audit repository into an auditReader.
func NewAuditReader(repo *repository.AuditRepo) auditReader {
	return repo
}
