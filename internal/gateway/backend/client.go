package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tech-assigner/internal/apperr"
	"tech-assigner/internal/domain"
	"tech-assigner/internal/session"
)

const bodyLimit = 4 << 20

// Client talks to the platform backend's assigner REST surface. It holds no
// state of its own; the backend is the source of truth for every collection.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// OrdersForAssignment fetches the live order queue.
func (c *Client) OrdersForAssignment(ctx context.Context, sess session.Session) ([]domain.WorkItem, error) {
	data, err := c.get(ctx, sess, "/api/assigner/orders-for-assignment", nil)
	if err != nil {
		return nil, err
	}
	dtos, err := decodeList[orderDTO](data)
	if err != nil {
		return nil, fmt.Errorf("orders-for-assignment: %w", err)
	}
	items := make([]domain.WorkItem, 0, len(dtos))
	for _, d := range dtos {
		items = append(items, d.toDomain())
	}
	return items, nil
}

// RepairsForAssignment fetches the live repair-request queue.
func (c *Client) RepairsForAssignment(ctx context.Context, sess session.Session) ([]domain.WorkItem, error) {
	data, err := c.get(ctx, sess, "/api/assigner/repairs-for-assignment", nil)
	if err != nil {
		return nil, err
	}
	dtos, err := decodeList[repairDTO](data)
	if err != nil {
		return nil, fmt.Errorf("repairs-for-assignment: %w", err)
	}
	items := make([]domain.WorkItem, 0, len(dtos))
	for _, d := range dtos {
		items = append(items, d.toDomain())
	}
	return items, nil
}

// AssignmentLog fetches historical assignment events for one kind,
// optionally narrowed to a single delivery agent.
func (c *Client) AssignmentLog(ctx context.Context, sess session.Session, kind domain.Kind, deliveryID string) ([]domain.AssignmentLogEntry, error) {
	q := url.Values{"assignmentType": []string{string(kind)}}
	if deliveryID != "" {
		q.Set("deliveryId", deliveryID)
	}
	data, err := c.get(ctx, sess, "/api/assigner/assignment-log", q)
	if err != nil {
		return nil, err
	}
	dtos, err := decodeList[logEntryDTO](data)
	if err != nil {
		return nil, fmt.Errorf("assignment-log: %w", err)
	}
	entries := make([]domain.AssignmentLogEntry, 0, len(dtos))
	for _, d := range dtos {
		entries = append(entries, d.toDomain())
	}
	return entries, nil
}

// DeliveryAgents fetches the available delivery agents.
func (c *Client) DeliveryAgents(ctx context.Context, sess session.Session) ([]domain.DeliveryAgent, error) {
	data, err := c.get(ctx, sess, "/api/assigner/delivery-persons", nil)
	if err != nil {
		return nil, err
	}
	dtos, err := decodeList[agentDTO](data)
	if err != nil {
		return nil, fmt.Errorf("delivery-persons: %w", err)
	}
	agents := make([]domain.DeliveryAgent, 0, len(dtos))
	for _, d := range dtos {
		agents = append(agents, d.toDomain())
	}
	return agents, nil
}

// AssignOrder creates a new order assignment.
func (c *Client) AssignOrder(ctx context.Context, sess session.Session, orderID, deliveryID, notes string) error {
	body := assignOrderRequest{OrderID: orderID, DeliveryID: deliveryID, Notes: notes}
	return c.send(ctx, sess, http.MethodPost, "/api/assigner/assign-order", body)
}

// AssignRepair creates a new repair-request assignment.
func (c *Client) AssignRepair(ctx context.Context, sess session.Session, repairID, deliveryID, notes string) error {
	body := assignRepairRequest{RepairRequestID: repairID, DeliveryID: deliveryID, Notes: notes}
	return c.send(ctx, sess, http.MethodPost, "/api/assigner/assign-repair", body)
}

// ReassignOrder replaces the delivery agent on an already-assigned order.
// The backend appends a new log entry; history is never edited.
func (c *Client) ReassignOrder(ctx context.Context, sess session.Session, orderID, newDeliveryID, notes string) error {
	body := reassignRequest{NewDeliveryID: newDeliveryID, Notes: notes}
	return c.send(ctx, sess, http.MethodPut, "/api/assigner/reassign-order/"+url.PathEscape(orderID), body)
}

// ReassignRepair replaces the delivery agent on an already-assigned repair.
func (c *Client) ReassignRepair(ctx context.Context, sess session.Session, repairID, newDeliveryID, notes string) error {
	body := reassignRequest{NewDeliveryID: newDeliveryID, Notes: notes}
	return c.send(ctx, sess, http.MethodPut, "/api/assigner/reassign-repair/"+url.PathEscape(repairID), body)
}

func (c *Client) get(ctx context.Context, sess session.Session, path string, query url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", path, err)
	}
	return c.do(req, sess, path)
}

func (c *Client) send(ctx context.Context, sess session.Session, method, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	_, err = c.do(req, sess, path)
	return err
}

func (c *Client) do(req *http.Request, sess session.Session, path string) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+sess.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// an intentionally cancelled cycle is not a backend failure
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%s: %w: %w", path, apperr.ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, bodyLimit))
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%s: read body: %w: %w", path, apperr.ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, apperr.ErrAuthExpired
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &apperr.BackendError{Status: resp.StatusCode, Message: errorMessage(data)}
	}
	return data, nil
}

// errorMessage pulls a human-readable message out of a backend error body.
func errorMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return strings.TrimSpace(string(data))
}
