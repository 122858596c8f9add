package backend

import (
	"encoding/json"
	"fmt"
	"time"

	"tech-assigner/internal/domain"
)

// The backend returns list responses either as a paginated envelope
// {"content": [...]} or as a bare array, depending on the endpoint version.
// Both shapes are accepted everywhere.
type envelope struct {
	Content json.RawMessage `json:"content"`
}

func decodeList[T any](data []byte) ([]T, error) {
	var items []T
	if err := json.Unmarshal(data, &items); err == nil {
		return items, nil
	}
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	if len(env.Content) == 0 {
		return nil, nil
	}
	if err := json.Unmarshal(env.Content, &items); err != nil {
		return nil, fmt.Errorf("decode list content: %w", err)
	}
	return items, nil
}

type addressDTO struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
}

func (a *addressDTO) toDomain() *domain.Address {
	if a == nil {
		return nil
	}
	return &domain.Address{Street: a.Street, City: a.City, State: a.State}
}

type orderDTO struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	UserID      string          `json:"userId"`
	UserName    string          `json:"userName"`
	UserAddress *addressDTO     `json:"userAddress,omitempty"`
	ShopID      string          `json:"shopId"`
	ShopName    string          `json:"shopName"`
	ShopAddress *addressDTO     `json:"shopAddress,omitempty"`
	TotalPrice  json.RawMessage `json:"totalPrice,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	DeliveryID  string          `json:"deliveryId,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

type repairDTO struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	UserID      string          `json:"userId"`
	UserName    string          `json:"userName"`
	UserAddress *addressDTO     `json:"userAddress,omitempty"`
	ShopID      string          `json:"shopId"`
	ShopName    string          `json:"shopName"`
	ShopAddress *addressDTO     `json:"shopAddress,omitempty"`
	Price       json.RawMessage `json:"price,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	DeliveryID  string          `json:"deliveryId,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

type logEntryDTO struct {
	AssignmentType  string          `json:"assignmentType"`
	OrderID         string          `json:"orderId,omitempty"`
	RepairRequestID string          `json:"repairRequestId,omitempty"`
	DeliveryID      string          `json:"deliveryId"`
	AssignerID      string          `json:"assignerId"`
	Status          string          `json:"status,omitempty"`
	UserID          string          `json:"userId"`
	UserName        string          `json:"userName"`
	UserAddress     *addressDTO     `json:"userAddress,omitempty"`
	ShopID          string          `json:"shopId"`
	ShopName        string          `json:"shopName"`
	ShopAddress     *addressDTO     `json:"shopAddress,omitempty"`
	Price           json.RawMessage `json:"price,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

type agentDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// price fields arrive as either a JSON number or a quoted decimal string;
// the decimal text is kept as-is either way.
func priceString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func (o orderDTO) toDomain() domain.WorkItem {
	return domain.WorkItem{
		ID:          o.ID,
		Kind:        domain.KindOrder,
		Status:      domain.Status(o.Status),
		UserID:      o.UserID,
		UserName:    o.UserName,
		UserAddress: o.UserAddress.toDomain(),
		ShopID:      o.ShopID,
		ShopName:    o.ShopName,
		ShopAddress: o.ShopAddress.toDomain(),
		Price:       priceString(o.TotalPrice),
		CreatedAt:   o.CreatedAt,
		DeliveryID:  o.DeliveryID,
		Notes:       o.Notes,
	}
}

func (r repairDTO) toDomain() domain.WorkItem {
	return domain.WorkItem{
		ID:          r.ID,
		Kind:        domain.KindRepair,
		Status:      domain.Status(r.Status),
		UserID:      r.UserID,
		UserName:    r.UserName,
		UserAddress: r.UserAddress.toDomain(),
		ShopID:      r.ShopID,
		ShopName:    r.ShopName,
		ShopAddress: r.ShopAddress.toDomain(),
		Price:       priceString(r.Price),
		CreatedAt:   r.CreatedAt,
		DeliveryID:  r.DeliveryID,
		Notes:       r.Notes,
	}
}

func (e logEntryDTO) toDomain() domain.AssignmentLogEntry {
	return domain.AssignmentLogEntry{
		AssignmentType:  domain.Kind(e.AssignmentType),
		OrderID:         e.OrderID,
		RepairRequestID: e.RepairRequestID,
		DeliveryID:      e.DeliveryID,
		AssignerID:      e.AssignerID,
		Status:          domain.Status(e.Status),
		UserID:          e.UserID,
		UserName:        e.UserName,
		UserAddress:     e.UserAddress.toDomain(),
		ShopID:          e.ShopID,
		ShopName:        e.ShopName,
		ShopAddress:     e.ShopAddress.toDomain(),
		Price:           priceString(e.Price),
		Notes:           e.Notes,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func (a agentDTO) toDomain() domain.DeliveryAgent {
	return domain.DeliveryAgent{ID: a.ID, Name: a.Name, Email: a.Email, Phone: a.Phone}
}

type assignOrderRequest struct {
	OrderID    string `json:"orderId"`
	DeliveryID string `json:"deliveryId"`
	Notes      string `json:"notes,omitempty"`
}

type assignRepairRequest struct {
	RepairRequestID string `json:"repairRequestId"`
	DeliveryID      string `json:"deliveryId"`
	Notes           string `json:"notes,omitempty"`
}

type reassignRequest struct {
	NewDeliveryID string `json:"newDeliveryId"`
	Notes         string `json:"notes,omitempty"`
}
