package domain

import "time"

type (
	// Kind distinguishes the two work item variants.
	Kind string
	// Status is a raw lifecycle status string as the backend sends it.
	Status string
	// Classification is the pending/active/terminal grouping derived from a Status.
	Classification string
)

// List of work item kinds.
const (
	KindOrder  Kind = "ORDER"
	KindRepair Kind = "REPAIR"
)

var allowedKinds = [...]Kind{KindOrder, KindRepair}

// Valid checks if the Kind is valid.
func (k Kind) Valid() bool {
	for _, v := range allowedKinds {
		if k == v {
			return true
		}
	}
	return false
}

// Address - structured postal fields, display only.
type Address struct {
	Street string
	City   string
	State  string
}

// WorkItem is an order or repair request awaiting or undergoing
// delivery-agent handling. IDs are opaque and unique within a kind.
type WorkItem struct {
	ID     string
	Kind   Kind
	Status Status

	UserID      string
	UserName    string
	UserAddress *Address
	ShopID      string
	ShopName    string
	ShopAddress *Address

	// Price is kept as the backend's decimal string, currency EGP.
	Price string

	CreatedAt  time.Time
	DeliveryID string
	AssignerID string
	Notes      string
}

// Assigned reports whether a delivery agent currently holds the item.
func (w WorkItem) Assigned() bool { return w.DeliveryID != "" }

// DeliveryAgent - referenced, never owned, by work items and log entries.
type DeliveryAgent struct {
	ID    string
	Name  string
	Email string
	Phone string
}
