package domain

import "time"

// AssignmentLogEntry is one immutable assignment event from the backend's
// append-only log. This service only ever reads entries; counterparty and
// address fields are denormalized by the backend at write time.
type AssignmentLogEntry struct {
	AssignmentType  Kind
	OrderID         string
	RepairRequestID string

	DeliveryID string
	AssignerID string
	Status     Status

	UserID      string
	UserName    string
	UserAddress *Address
	ShopID      string
	ShopName    string
	ShopAddress *Address
	Price       string
	Notes       string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// WorkItemID returns the id of the work item the entry refers to.
func (e AssignmentLogEntry) WorkItemID() string {
	if e.AssignmentType == KindRepair {
		return e.RepairRequestID
	}
	return e.OrderID
}
