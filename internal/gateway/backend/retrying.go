package backend

import (
	"context"
	"errors"
	"net/http"
	"time"

	"tech-assigner/internal/apperr"
	"tech-assigner/internal/domain"
	"tech-assigner/internal/logx"
	"tech-assigner/internal/session"
)

type gateway interface {
	OrdersForAssignment(context.Context, session.Session) ([]domain.WorkItem, error)
	RepairsForAssignment(context.Context, session.Session) ([]domain.WorkItem, error)
	AssignmentLog(context.Context, session.Session, domain.Kind, string) ([]domain.AssignmentLogEntry, error)
	DeliveryAgents(context.Context, session.Session) ([]domain.DeliveryAgent, error)

	AssignOrder(ctx context.Context, sess session.Session, orderID, deliveryID, notes string) error
	AssignRepair(ctx context.Context, sess session.Session, repairID, deliveryID, notes string) error
	ReassignOrder(ctx context.Context, sess session.Session, orderID, newDeliveryID, notes string) error
	ReassignRepair(ctx context.Context, sess session.Session, repairID, newDeliveryID, notes string) error
}

type counter interface {
	Inc()
}

// RetryConfig describes the RetryingGateway backoff behaviour.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingGateway retries read-only backend calls on transient failures.
// Assignment writes are never retried here: the backend gives no idempotency
// guarantee for them, so a blind replay could double-assign.
type RetryingGateway struct {
	next    gateway
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingGateway wraps next with retry behaviour; returns nil when next is nil.
func NewRetryingGateway(next gateway, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingGateway {
	if next == nil {
		return nil
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &RetryingGateway{next: next, logger: logger, retries: retries, cfg: cfg}
}

// OrdersForAssignment fetches the live order queue, with retries.
func (g *RetryingGateway) OrdersForAssignment(ctx context.Context, sess session.Session) ([]domain.WorkItem, error) {
	return retry(ctx, g, "OrdersForAssignment", func(ctx context.Context) ([]domain.WorkItem, error) {
		return g.next.OrdersForAssignment(ctx, sess)
	})
}

// RepairsForAssignment fetches the live repair queue, with retries.
func (g *RetryingGateway) RepairsForAssignment(ctx context.Context, sess session.Session) ([]domain.WorkItem, error) {
	return retry(ctx, g, "RepairsForAssignment", func(ctx context.Context) ([]domain.WorkItem, error) {
		return g.next.RepairsForAssignment(ctx, sess)
	})
}

// AssignmentLog fetches assignment history, with retries.
func (g *RetryingGateway) AssignmentLog(ctx context.Context, sess session.Session, kind domain.Kind, deliveryID string) ([]domain.AssignmentLogEntry, error) {
	return retry(ctx, g, "AssignmentLog", func(ctx context.Context) ([]domain.AssignmentLogEntry, error) {
		return g.next.AssignmentLog(ctx, sess, kind, deliveryID)
	})
}

// DeliveryAgents fetches the agent list, with retries.
func (g *RetryingGateway) DeliveryAgents(ctx context.Context, sess session.Session) ([]domain.DeliveryAgent, error) {
	return retry(ctx, g, "DeliveryAgents", func(ctx context.Context) ([]domain.DeliveryAgent, error) {
		return g.next.DeliveryAgents(ctx, sess)
	})
}

// AssignOrder delegates without retrying.
func (g *RetryingGateway) AssignOrder(ctx context.Context, sess session.Session, orderID, deliveryID, notes string) error {
	return g.next.AssignOrder(ctx, sess, orderID, deliveryID, notes)
}

// AssignRepair delegates without retrying.
func (g *RetryingGateway) AssignRepair(ctx context.Context, sess session.Session, repairID, deliveryID, notes string) error {
	return g.next.AssignRepair(ctx, sess, repairID, deliveryID, notes)
}

// ReassignOrder delegates without retrying.
func (g *RetryingGateway) ReassignOrder(ctx context.Context, sess session.Session, orderID, newDeliveryID, notes string) error {
	return g.next.ReassignOrder(ctx, sess, orderID, newDeliveryID, notes)
}

// ReassignRepair delegates without retrying.
func (g *RetryingGateway) ReassignRepair(ctx context.Context, sess session.Session, repairID, newDeliveryID, notes string) error {
	return g.next.ReassignRepair(ctx, sess, repairID, newDeliveryID, notes)
}

func retry[T any](ctx context.Context, g *RetryingGateway, method string, fn func(context.Context) (T, error)) (T, error) {
	var (
		zero    T
		lastErr error
	)
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		out, err := fn(ctx)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if ctx.Err() != nil || attempt == g.cfg.MaxAttempts || !isRetryable(err) {
			break
		}
		delay := backoff(g.cfg.BaseDelay, g.cfg.MaxDelay, attempt)
		if g.retries != nil {
			g.retries.Inc()
		}
		g.logger.Warn("backend gateway retry",
			logx.String("method", method),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Any("err", err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return zero, lastErr
}

// isRetryable: transport failures and throttling/bad-gateway statuses.
// Auth expiry and validation-level responses are final.
func isRetryable(err error) bool {
	if errors.Is(err, apperr.ErrUnavailable) {
		return true
	}
	if be, ok := apperr.AsBackend(err); ok {
		switch be.Status {
		case http.StatusTooManyRequests,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}
	return false
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
