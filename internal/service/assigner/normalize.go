package assigner

import "tech-assigner/internal/domain"

// NormalizeLogEntry converts one assignment-log entry into the same shape as
// a live work item so both sources can be merged uniformly. A log entry with
// no status still implies at least one assignment occurred, hence the
// ASSIGNED fallback. Nothing is validated beyond presence: a missing work
// item id is a backend data-integrity condition and passes through as-is.
func NormalizeLogEntry(e domain.AssignmentLogEntry) domain.WorkItem {
	status := e.Status
	if status == "" {
		status = domain.StatusAssigned
	}
	return domain.WorkItem{
		ID:          e.WorkItemID(),
		Kind:        e.AssignmentType,
		Status:      status,
		UserID:      e.UserID,
		UserName:    e.UserName,
		UserAddress: e.UserAddress,
		ShopID:      e.ShopID,
		ShopName:    e.ShopName,
		ShopAddress: e.ShopAddress,
		Price:       e.Price,
		CreatedAt:   e.CreatedAt,
		DeliveryID:  e.DeliveryID,
		AssignerID:  e.AssignerID,
		Notes:       e.Notes,
	}
}

// NormalizeLog converts a batch of log entries.
func NormalizeLog(entries []domain.AssignmentLogEntry) []domain.WorkItem {
	items := make([]domain.WorkItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, NormalizeLogEntry(e))
	}
	return items
}
