package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"tech-assigner/internal/prometrics"
)

type metricsOut struct {
	dig.Out

	RateLimitExceededTotal prometheus.Counter `name:"rate_limit_exceeded_total"`
	GatewayRetriesTotal    prometheus.Counter `name:"gateway_retries_total"`
	SnapshotsTotal         prometheus.Counter `name:"reconcile_snapshots_total"`
	SnapshotFailuresTotal  prometheus.Counter `name:"reconcile_snapshot_failures_total"`
	AssignmentActionsTotal prometheus.Counter `name:"assignment_actions_total"`
	EventsConsumedTotal    prometheus.Counter `name:"assignment_events_consumed_total"`
}

// provideMetrics registers the service counters on the default registry.
// An already registered counter is reused, so rebuilding the container in
// one process does not fail.
func provideMetrics() (metricsOut, error) {
	rl, err := registerCounter("rate_limit_exceeded_total", prometrics.NewRateLimitExceededTotal())
	if err != nil {
		return metricsOut{}, err
	}
	gr, err := registerCounter("gateway_retries_total", prometrics.NewGatewayRetriesTotal())
	if err != nil {
		return metricsOut{}, err
	}
	st, err := registerCounter("reconcile_snapshots_total", prometrics.NewSnapshotsTotal())
	if err != nil {
		return metricsOut{}, err
	}
	sf, err := registerCounter("reconcile_snapshot_failures_total", prometrics.NewSnapshotFailuresTotal())
	if err != nil {
		return metricsOut{}, err
	}
	aa, err := registerCounter("assignment_actions_total", prometrics.NewAssignmentActionsTotal())
	if err != nil {
		return metricsOut{}, err
	}
	ec, err := registerCounter("assignment_events_consumed_total", prometrics.NewAssignmentEventsConsumedTotal())
	if err != nil {
		return metricsOut{}, err
	}
	return metricsOut{
		RateLimitExceededTotal: rl,
		GatewayRetriesTotal:    gr,
		SnapshotsTotal:         st,
		SnapshotFailuresTotal:  sf,
		AssignmentActionsTotal: aa,
		EventsConsumedTotal:    ec,
	}, nil
}

func registerCounter(name string, c prometheus.Counter) (prometheus.Counter, error) {
	if err := prometheus.DefaultRegisterer.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("register %s: %w", name, err)
	}
	return c, nil
}
