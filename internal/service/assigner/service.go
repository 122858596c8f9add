package assigner

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"tech-assigner/internal/apperr"
	"tech-assigner/internal/domain"
	"tech-assigner/internal/logx"
	"tech-assigner/internal/session"
)

// Service owns the reconciliation and assignment workflow. It keeps no
// durable state: every snapshot is rebuilt from the backend, and assignment
// actions only ever create new backend events.
type Service struct {
	gw               Gateway
	audit            AuditRecorder
	logger           logx.Logger
	operationTimeout time.Duration
	now              func() time.Time

	snapshotsTotal   counter
	snapshotFailures counter
	actionsTotal     counter

	mu       sync.Mutex
	inFlight map[string]*cycle
}

// cycle identifies one in-flight snapshot so a finished cycle only clears
// itself, never a newer one that replaced it.
type cycle struct {
	cancel context.CancelFunc
}

// Counters groups the optional service metrics.
type Counters struct {
	SnapshotsTotal   counter
	SnapshotFailures counter
	ActionsTotal     counter
}

// NewService creates the assigner service.
func NewService(gw Gateway, audit AuditRecorder, logger logx.Logger, timeout time.Duration, c Counters) *Service {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Service{
		gw:               gw,
		audit:            audit,
		logger:           logger,
		operationTimeout: timeout,
		now:              func() time.Time { return time.Now().UTC() },
		snapshotsTotal:   c.SnapshotsTotal,
		snapshotFailures: c.SnapshotFailures,
		actionsTotal:     c.ActionsTotal,
		inFlight:         make(map[string]*cycle),
	}
}

// Snapshot fetches the live queue and the assignment log concurrently,
// normalizes the log and reconciles both into one deduplicated view.
// Either fetch failing abandons the whole cycle; no partial merge is ever
// returned. Starting a snapshot cancels any still-running snapshot the same
// operator has for the same kind/agent pair, so a stale cycle can never
// overtake a fresh one. Other operators' cycles are never touched; each
// screen owns the collection it fetched.
func (s *Service) Snapshot(ctx context.Context, sess session.Session, kind domain.Kind, deliveryID string) ([]domain.WorkItem, error) {
	if !kind.Valid() {
		return nil, apperr.ErrValidation
	}
	inc(s.snapshotsTotal)

	key := sess.AssignerID + "/" + string(kind) + "/" + deliveryID
	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	cy := s.beginCycle(key, cancel)
	defer s.endCycle(key, cy)

	g, gctx := errgroup.WithContext(ctx)

	var (
		live    []domain.WorkItem
		entries []domain.AssignmentLogEntry
	)
	g.Go(func() error {
		var err error
		switch kind {
		case domain.KindRepair:
			live, err = s.gw.RepairsForAssignment(gctx, sess)
		default:
			live, err = s.gw.OrdersForAssignment(gctx, sess)
		}
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = s.gw.AssignmentLog(gctx, sess, kind, deliveryID)
		return err
	})

	if err := g.Wait(); err != nil {
		inc(s.snapshotFailures)
		return nil, err
	}
	return Reconcile(live, NormalizeLog(entries)), nil
}

// Agents lists the delivery agents available for assignment.
func (s *Service) Agents(ctx context.Context, sess session.Session) ([]domain.DeliveryAgent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()
	return s.gw.DeliveryAgents(ctx, sess)
}

// Assign creates a first delivery assignment for a work item. Missing ids
// fail locally with ErrValidation before any network call.
func (s *Service) Assign(ctx context.Context, sess session.Session, kind domain.Kind, workItemID, deliveryID, notes string) error {
	return s.act(ctx, sess, domain.ActionAssign, kind, workItemID, deliveryID, notes)
}

// Reassign replaces the delivery agent on an already-assigned work item.
// The backend appends a new log entry; the old one is never touched.
func (s *Service) Reassign(ctx context.Context, sess session.Session, kind domain.Kind, workItemID, newDeliveryID, notes string) error {
	return s.act(ctx, sess, domain.ActionReassign, kind, workItemID, newDeliveryID, notes)
}

func (s *Service) act(ctx context.Context, sess session.Session, action domain.Action, kind domain.Kind, workItemID, deliveryID, notes string) error {
	workItemID = strings.TrimSpace(workItemID)
	deliveryID = strings.TrimSpace(deliveryID)
	if workItemID == "" || deliveryID == "" || !kind.Valid() {
		return apperr.ErrValidation
	}

	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()

	var err error
	switch {
	case action == domain.ActionAssign && kind == domain.KindOrder:
		err = s.gw.AssignOrder(ctx, sess, workItemID, deliveryID, notes)
	case action == domain.ActionAssign && kind == domain.KindRepair:
		err = s.gw.AssignRepair(ctx, sess, workItemID, deliveryID, notes)
	case action == domain.ActionReassign && kind == domain.KindOrder:
		err = s.gw.ReassignOrder(ctx, sess, workItemID, deliveryID, notes)
	default:
		err = s.gw.ReassignRepair(ctx, sess, workItemID, deliveryID, notes)
	}
	if err != nil {
		return err
	}

	inc(s.actionsTotal)
	s.logger.Info("work item "+string(action)+"ed",
		logx.String("event", string(action)),
		logx.String("kind", string(kind)),
		logx.String("work_item_id", workItemID),
		logx.String("delivery_id", deliveryID),
		logx.String("assigner_id", sess.AssignerID),
	)
	s.recordAudit(ctx, domain.AssignmentAction{
		ID:         uuid.NewString(),
		Kind:       kind,
		WorkItemID: workItemID,
		DeliveryID: deliveryID,
		AssignerID: sess.AssignerID,
		Action:     action,
		Notes:      notes,
		Source:     domain.SourceConsole,
		CreatedAt:  s.now(),
	})
	return nil
}

// recordAudit is best-effort: the backend already accepted the assignment,
// so a local audit failure must not fail the operation.
func (s *Service) recordAudit(ctx context.Context, a domain.AssignmentAction) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, a); err != nil {
		s.logger.Error("audit record failed",
			logx.String("work_item_id", a.WorkItemID),
			logx.Any("err", err),
		)
	}
}

func (s *Service) beginCycle(key string, cancel context.CancelFunc) *cycle {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.inFlight[key]; ok {
		prev.cancel()
	}
	cy := &cycle{cancel: cancel}
	s.inFlight[key] = cy
	return cy
}

func (s *Service) endCycle(key string, cy *cycle) {
	cy.cancel()
	s.mu.Lock()
	defer s.mu.Unlock()
	// a newer cycle may have replaced us already
	if current, ok := s.inFlight[key]; ok && current == cy {
		delete(s.inFlight, key)
	}
}

func inc(c counter) {
	if c != nil {
		c.Inc()
	}
}
