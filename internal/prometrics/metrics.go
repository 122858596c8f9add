package prometrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewGatewayRetriesTotal returns a Prometheus counter for the number of retry attempts performed by the backend gateway
func NewGatewayRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gateway_retries_total",
		Help: "Total number of retry attempts performed by the backend gateway",
	})
}

// NewSnapshotsTotal returns a Prometheus counter for started reconciliation cycles
func NewSnapshotsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reconcile_snapshots_total",
		Help: "Total number of reconciliation snapshot cycles started",
	})
}

// NewSnapshotFailuresTotal returns a Prometheus counter for abandoned reconciliation cycles
func NewSnapshotFailuresTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "reconcile_snapshot_failures_total",
		Help: "Total number of reconciliation snapshot cycles abandoned on fetch failure",
	})
}

// NewAssignmentActionsTotal returns a Prometheus counter for accepted assignment actions
func NewAssignmentActionsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assignment_actions_total",
		Help: "Total number of assignment and reassignment actions accepted by the backend",
	})
}

// NewAssignmentEventsConsumedTotal returns a Prometheus counter for consumed assignment events
func NewAssignmentEventsConsumedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assignment_events_consumed_total",
		Help: "Total number of assignment events consumed from Kafka into the audit trail",
	})
}
