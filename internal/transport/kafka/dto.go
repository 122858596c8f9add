package kafka

import (
	"strings"
	"time"

	"tech-assigner/internal/domain"
)

// EventDTO is the wire shape of one assignment event on the backend topic.
type EventDTO struct {
	ID             string    `json:"id"`
	AssignmentType string    `json:"assignment_type"`
	WorkItemID     string    `json:"work_item_id"`
	DeliveryID     string    `json:"delivery_id"`
	AssignerID     string    `json:"assigner_id"`
	Action         string    `json:"action"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
}

// ToDomain converts an EventDTO to a domain.AssignmentAction sourced from
// the event stream. An absent action means a first assignment.
func ToDomain(dto EventDTO) domain.AssignmentAction {
	action := domain.Action(strings.ToLower(strings.TrimSpace(dto.Action)))
	if action == "" {
		action = domain.ActionAssign
	}
	return domain.AssignmentAction{
		ID:         strings.TrimSpace(dto.ID),
		Kind:       domain.Kind(strings.ToUpper(strings.TrimSpace(dto.AssignmentType))),
		WorkItemID: strings.TrimSpace(dto.WorkItemID),
		DeliveryID: strings.TrimSpace(dto.DeliveryID),
		AssignerID: strings.TrimSpace(dto.AssignerID),
		Action:     action,
		Notes:      dto.Notes,
		Source:     domain.SourceEvent,
		CreatedAt:  dto.CreatedAt,
	}
}
