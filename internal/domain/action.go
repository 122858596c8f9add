package domain

import "time"

// Action is the kind of assignment event recorded in the audit trail.
type Action string

// List of audit actions.
const (
	ActionAssign   Action = "assign"
	ActionReassign Action = "reassign"
)

// ActionSource tells where an audit record came from.
type ActionSource string

// List of audit sources.
const (
	// SourceConsole - an operator issued the action through this service.
	SourceConsole ActionSource = "console"
	// SourceEvent - the backend emitted the event on the assignment topic.
	SourceEvent ActionSource = "event"
)

// AssignmentAction is one append-only audit record of an assignment event.
type AssignmentAction struct {
	ID         string
	Kind       Kind
	WorkItemID string
	DeliveryID string
	AssignerID string
	Action     Action
	Notes      string
	Source     ActionSource
	CreatedAt  time.Time
}
