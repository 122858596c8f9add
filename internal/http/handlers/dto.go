package handlers

import (
	"time"

	"tech-assigner/internal/domain"
)

type addressResponse struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
}

type workItemResponse struct {
	ID     string `json:"id"`
	Kind   string `json:"kind"`
	Status string `json:"status"`
	Class  string `json:"statusClass"`

	UserID      string           `json:"userId,omitempty"`
	UserName    string           `json:"userName,omitempty"`
	UserAddress *addressResponse `json:"userAddress,omitempty"`
	ShopID      string           `json:"shopId,omitempty"`
	ShopName    string           `json:"shopName,omitempty"`
	ShopAddress *addressResponse `json:"shopAddress,omitempty"`

	Price      string `json:"price,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
	DeliveryID string `json:"deliveryId,omitempty"`
	AssignerID string `json:"assignerId,omitempty"`
	Notes      string `json:"notes,omitempty"`

	Assignable   bool `json:"assignable"`
	Reassignable bool `json:"reassignable"`
}

type workItemPageResponse struct {
	Items       []workItemResponse `json:"items"`
	Page        int                `json:"page"`
	Size        int                `json:"size"`
	TotalItems  int                `json:"totalItems"`
	TotalPages  int                `json:"totalPages"`
	PageNumbers []int              `json:"pageNumbers"`
}

type agentResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type actionResponse struct {
	ID         string `json:"id"`
	Kind       string `json:"kind"`
	WorkItemID string `json:"workItemId"`
	DeliveryID string `json:"deliveryId"`
	AssignerID string `json:"assignerId,omitempty"`
	Action     string `json:"action"`
	Notes      string `json:"notes,omitempty"`
	Source     string `json:"source"`
	CreatedAt  string `json:"createdAt"`
}

type assignRequest struct {
	Kind       string `json:"kind"`
	WorkItemID string `json:"workItemId"`
	DeliveryID string `json:"deliveryId"`
	Notes      string `json:"notes"`
}

type reassignRequest struct {
	NewDeliveryID string `json:"newDeliveryId"`
	Notes         string `json:"notes"`
}

func addressToResponse(a *domain.Address) *addressResponse {
	if a == nil {
		return nil
	}
	return &addressResponse{Street: a.Street, City: a.City, State: a.State}
}

func workItemToResponse(w domain.WorkItem) workItemResponse {
	resp := workItemResponse{
		ID:           w.ID,
		Kind:         string(w.Kind),
		Status:       string(w.Status),
		Class:        string(domain.Classify(w.Status)),
		UserID:       w.UserID,
		UserName:     w.UserName,
		UserAddress:  addressToResponse(w.UserAddress),
		ShopID:       w.ShopID,
		ShopName:     w.ShopName,
		ShopAddress:  addressToResponse(w.ShopAddress),
		Price:        w.Price,
		DeliveryID:   w.DeliveryID,
		AssignerID:   w.AssignerID,
		Notes:        w.Notes,
		Assignable:   domain.Assignable(w.Status),
		Reassignable: domain.Reassignable(w.Status),
	}
	if !w.CreatedAt.IsZero() {
		resp.CreatedAt = w.CreatedAt.Format(time.RFC3339)
	}
	return resp
}

func workItemsToResponse(items []domain.WorkItem) []workItemResponse {
	out := make([]workItemResponse, 0, len(items))
	for _, w := range items {
		out = append(out, workItemToResponse(w))
	}
	return out
}

func agentToResponse(a domain.DeliveryAgent) agentResponse {
	return agentResponse{ID: a.ID, Name: a.Name, Email: a.Email, Phone: a.Phone}
}

func actionsToResponse(actions []domain.AssignmentAction) []actionResponse {
	out := make([]actionResponse, 0, len(actions))
	for _, a := range actions {
		out = append(out, actionToResponse(a))
	}
	return out
}

func actionToResponse(a domain.AssignmentAction) actionResponse {
	return actionResponse{
		ID:         a.ID,
		Kind:       string(a.Kind),
		WorkItemID: a.WorkItemID,
		DeliveryID: a.DeliveryID,
		AssignerID: a.AssignerID,
		Action:     string(a.Action),
		Notes:      a.Notes,
		Source:     string(a.Source),
		CreatedAt:  a.CreatedAt.UTC().Format(time.RFC3339),
	}
}
