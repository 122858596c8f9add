package domain

import "strings"

// List of work item statuses observed from the backend. The backend may
// introduce new ones at any time; unknown values classify as ClassUnknown.
const (
	StatusPending       Status = "PENDING"
	StatusPendingPickup Status = "PENDING_PICKUP"
	StatusSubmitted     Status = "SUBMITTED"
	StatusQuotePending  Status = "QUOTE_PENDING"

	StatusAssigned   Status = "ASSIGNED"
	StatusInTransit  Status = "IN_TRANSIT"
	StatusInProgress Status = "IN_PROGRESS"

	StatusCompleted        Status = "COMPLETED"
	StatusFinishProcessing Status = "FINISHPROCESSING"
	StatusDeviceDelivered  Status = "DEVICE_DELIVERED"
	StatusRepairCompleted  Status = "REPAIR_COMPLETED"

	StatusCancelled Status = "CANCELLED"
)

// List of possible classifications of a status.
const (
	// ClassPending - awaiting a first delivery assignment.
	ClassPending Classification = "pending"
	// ClassActive - assigned and moving; may be reassigned.
	ClassActive Classification = "active"
	// ClassTerminal - finished; no assignment actions through the normal flow.
	ClassTerminal Classification = "terminal"
	// ClassCancelled - cancelled; terminal for assignment purposes.
	ClassCancelled Classification = "cancelled"
	// ClassUnknown - neutral default for statuses this service does not know.
	ClassUnknown Classification = "unknown"
)

// classTable is the single source of truth for status classification.
// Every badge color and eligibility check goes through it; the authoritative
// transition logic lives in the backend.
var classTable = map[Status]Classification{
	StatusPending:       ClassPending,
	StatusPendingPickup: ClassPending,
	StatusSubmitted:     ClassPending,
	StatusQuotePending:  ClassPending,

	StatusAssigned:   ClassActive,
	StatusInTransit:  ClassActive,
	StatusInProgress: ClassActive,

	StatusCompleted:        ClassTerminal,
	StatusFinishProcessing: ClassTerminal,
	StatusDeviceDelivered:  ClassTerminal,
	StatusRepairCompleted:  ClassTerminal,

	StatusCancelled: ClassCancelled,
}

// Canonical normalizes a raw backend status string for table lookup.
func (s Status) Canonical() Status {
	return Status(strings.ToUpper(strings.TrimSpace(string(s))))
}

// Classify maps a raw status to its classification. Unknown statuses are not
// an error: the backend owns the status vocabulary and may extend it.
func Classify(s Status) Classification {
	if c, ok := classTable[s.Canonical()]; ok {
		return c
	}
	return ClassUnknown
}

// Assignable reports whether a work item with this status may receive a
// first assignment.
func Assignable(s Status) bool {
	return Classify(s) == ClassPending
}

// Reassignable reports whether the current delivery assignment may be
// replaced. The data layer does not enforce an existing delivery id; the
// operator workflow assumes one.
func Reassignable(s Status) bool {
	return Classify(s) == ClassActive
}
