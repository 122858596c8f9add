package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tech-assigner/internal/domain"
	"tech-assigner/internal/http/handlers"
)

type stubAuditReader struct {
	listFn           func(ctx context.Context, limit int) ([]domain.AssignmentAction, error)
	listByWorkItemFn func(ctx context.Context, workItemID string) ([]domain.AssignmentAction, error)
}

func (s *stubAuditReader) List(ctx context.Context, limit int) ([]domain.AssignmentAction, error) {
	return s.listFn(ctx, limit)
}

func (s *stubAuditReader) ListByWorkItem(ctx context.Context, workItemID string) ([]domain.AssignmentAction, error) {
	return s.listByWorkItemFn(ctx, workItemID)
}

func TestAuditHandler_List_OK(t *testing.T) {
	t.Parallel()

	reader := &stubAuditReader{
		listFn: func(_ context.Context, limit int) ([]domain.AssignmentAction, error) {
			require.Equal(t, 0, limit)
			return []domain.AssignmentAction{
				{
					ID:         "ev-1",
					Kind:       domain.KindOrder,
					WorkItemID: "o-1",
					DeliveryID: "d-1",
					Action:     domain.ActionAssign,
					Source:     domain.SourceConsole,
					CreatedAt:  time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC),
				},
			}, nil
		},
	}
	h := handlers.NewAuditHandler(testLogger(), reader)

	req := httptest.NewRequest(http.MethodGet, "/api/console/audit", nil)
	rr := httptest.NewRecorder()

	h.List(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var body []struct {
		ID        string `json:"id"`
		Action    string `json:"action"`
		Source    string `json:"source"`
		CreatedAt string `json:"createdAt"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	require.Len(t, body, 1)
	require.Equal(t, "ev-1", body[0].ID)
	require.Equal(t, "assign", body[0].Action)
	require.Equal(t, "console", body[0].Source)
	require.Equal(t, "2025-04-01T12:00:00Z", body[0].CreatedAt)
}

func TestAuditHandler_List_ByWorkItem(t *testing.T) {
	t.Parallel()

	reader := &stubAuditReader{
		listByWorkItemFn: func(_ context.Context, workItemID string) ([]domain.AssignmentAction, error) {
			require.Equal(t, "req-5", workItemID)
			return nil, nil
		},
	}
	h := handlers.NewAuditHandler(testLogger(), reader)

	req := httptest.NewRequest(http.MethodGet, "/api/console/audit?workItemId=req-5", nil)
	rr := httptest.NewRecorder()

	h.List(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, "[]", rr.Body.String())
}

func TestAuditHandler_List_PassesLimit(t *testing.T) {
	t.Parallel()

	reader := &stubAuditReader{
		listFn: func(_ context.Context, limit int) ([]domain.AssignmentAction, error) {
			require.Equal(t, 5, limit)
			return nil, nil
		},
	}
	h := handlers.NewAuditHandler(testLogger(), reader)

	req := httptest.NewRequest(http.MethodGet, "/api/console/audit?limit=5", nil)
	rr := httptest.NewRecorder()

	h.List(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
}
