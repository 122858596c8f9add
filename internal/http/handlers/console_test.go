package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"tech-assigner/internal/apperr"
	"tech-assigner/internal/domain"
	"tech-assigner/internal/http/handlers"
	"tech-assigner/internal/session"
)

type stubConsoleUsecase struct {
	snapshotFn func(ctx context.Context, sess session.Session, kind domain.Kind, deliveryID string) ([]domain.WorkItem, error)
	agentsFn   func(ctx context.Context, sess session.Session) ([]domain.DeliveryAgent, error)
	assignFn   func(ctx context.Context, sess session.Session, kind domain.Kind, workItemID, deliveryID, notes string) error
	reassignFn func(ctx context.Context, sess session.Session, kind domain.Kind, workItemID, newDeliveryID, notes string) error
}

func (s *stubConsoleUsecase) Snapshot(ctx context.Context, sess session.Session, kind domain.Kind, deliveryID string) ([]domain.WorkItem, error) {
	return s.snapshotFn(ctx, sess, kind, deliveryID)
}

func (s *stubConsoleUsecase) Agents(ctx context.Context, sess session.Session) ([]domain.DeliveryAgent, error) {
	return s.agentsFn(ctx, sess)
}

func (s *stubConsoleUsecase) Assign(ctx context.Context, sess session.Session, kind domain.Kind, workItemID, deliveryID, notes string) error {
	return s.assignFn(ctx, sess, kind, workItemID, deliveryID, notes)
}

func (s *stubConsoleUsecase) Reassign(ctx context.Context, sess session.Session, kind domain.Kind, workItemID, newDeliveryID, notes string) error {
	return s.reassignFn(ctx, sess, kind, workItemID, newDeliveryID, notes)
}

func withSession(req *http.Request) *http.Request {
	return req.WithContext(session.WithSession(req.Context(),
		session.Session{Token: "tok", AssignerID: "admin-1"}))
}

type pageBody struct {
	Items []struct {
		ID           string `json:"id"`
		Status       string `json:"status"`
		Class        string `json:"statusClass"`
		Assignable   bool   `json:"assignable"`
		Reassignable bool   `json:"reassignable"`
	} `json:"items"`
	Page        int   `json:"page"`
	Size        int   `json:"size"`
	TotalItems  int   `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
	PageNumbers []int `json:"pageNumbers"`
}

func someItems(n int) []domain.WorkItem {
	out := make([]domain.WorkItem, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.WorkItem{
			ID:        "item-" + string(rune('a'+i)),
			Kind:      domain.KindOrder,
			Status:    domain.StatusPending,
			UserName:  "Maged",
			CreatedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		})
	}
	return out
}

func TestConsoleHandler_WorkItems_OK(t *testing.T) {
	t.Parallel()

	uc := &stubConsoleUsecase{
		snapshotFn: func(_ context.Context, sess session.Session, kind domain.Kind, deliveryID string) ([]domain.WorkItem, error) {
			require.Equal(t, "tok", sess.Token)
			require.Equal(t, domain.KindOrder, kind)
			require.Equal(t, "", deliveryID)
			return someItems(3), nil
		},
	}
	h := handlers.NewConsoleHandler(testLogger(), uc)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/console/work-items?kind=ORDER", nil))
	rr := httptest.NewRecorder()

	h.WorkItems(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var body pageBody
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	require.Len(t, body.Items, 3)
	require.Equal(t, 1, body.Page)
	require.Equal(t, 3, body.TotalItems)
	require.Equal(t, 1, body.TotalPages)
	require.Equal(t, []int{1}, body.PageNumbers)
	require.Equal(t, "pending", body.Items[0].Class)
	require.True(t, body.Items[0].Assignable)
	require.False(t, body.Items[0].Reassignable)
}

func TestConsoleHandler_WorkItems_SecondPageWindow(t *testing.T) {
	t.Parallel()

	uc := &stubConsoleUsecase{
		snapshotFn: func(context.Context, session.Session, domain.Kind, string) ([]domain.WorkItem, error) {
			return someItems(7), nil
		},
	}
	h := handlers.NewConsoleHandler(testLogger(), uc)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/console/work-items?page=2&size=3", nil))
	rr := httptest.NewRecorder()

	h.WorkItems(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var body pageBody
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	require.Len(t, body.Items, 3)
	require.Equal(t, 2, body.Page)
	require.Equal(t, 7, body.TotalItems)
	require.Equal(t, 3, body.TotalPages)
	require.Equal(t, []int{1, 2, 3}, body.PageNumbers)
}

func TestConsoleHandler_WorkItems_SearchNarrows(t *testing.T) {
	t.Parallel()

	items := someItems(2)
	items[1].UserName = "Karim"

	uc := &stubConsoleUsecase{
		snapshotFn: func(context.Context, session.Session, domain.Kind, string) ([]domain.WorkItem, error) {
			return items, nil
		},
	}
	h := handlers.NewConsoleHandler(testLogger(), uc)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/console/work-items?q=karim", nil))
	rr := httptest.NewRecorder()

	h.WorkItems(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var body pageBody
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	require.Len(t, body.Items, 1)
	require.Equal(t, 1, body.TotalItems)
}

func TestConsoleHandler_WorkItems_InvalidKind(t *testing.T) {
	t.Parallel()

	h := handlers.NewConsoleHandler(testLogger(), &stubConsoleUsecase{
		snapshotFn: func(context.Context, session.Session, domain.Kind, string) ([]domain.WorkItem, error) {
			require.FailNow(t, "usecase must not be called on invalid kind")
			return nil, nil
		},
	})

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/console/work-items?kind=WARRANTY", nil))
	rr := httptest.NewRecorder()

	h.WorkItems(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestConsoleHandler_WorkItems_NoSession(t *testing.T) {
	t.Parallel()

	h := handlers.NewConsoleHandler(testLogger(), &stubConsoleUsecase{})

	req := httptest.NewRequest(http.MethodGet, "/api/console/work-items", nil)
	rr := httptest.NewRecorder()

	h.WorkItems(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestConsoleHandler_WorkItems_SessionExpiredFromBackend(t *testing.T) {
	t.Parallel()

	h := handlers.NewConsoleHandler(testLogger(), &stubConsoleUsecase{
		snapshotFn: func(context.Context, session.Session, domain.Kind, string) ([]domain.WorkItem, error) {
			return nil, apperr.ErrAuthExpired
		},
	})

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/console/work-items", nil))
	rr := httptest.NewRecorder()

	h.WorkItems(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)

	var body handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	require.Equal(t, "session expired", body.Error)
}

func TestConsoleHandler_WorkItems_BackendUnavailable(t *testing.T) {
	t.Parallel()

	h := handlers.NewConsoleHandler(testLogger(), &stubConsoleUsecase{
		snapshotFn: func(context.Context, session.Session, domain.Kind, string) ([]domain.WorkItem, error) {
			return nil, apperr.ErrUnavailable
		},
	})

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/console/work-items", nil))
	rr := httptest.NewRecorder()

	h.WorkItems(rr, req)

	require.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestConsoleHandler_Agents_OK(t *testing.T) {
	t.Parallel()

	uc := &stubConsoleUsecase{
		agentsFn: func(context.Context, session.Session) ([]domain.DeliveryAgent, error) {
			return []domain.DeliveryAgent{
				{ID: "d1", Name: "Hassan", Phone: "+201000000000"},
			}, nil
		},
	}
	h := handlers.NewConsoleHandler(testLogger(), uc)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/console/delivery-agents", nil))
	rr := httptest.NewRecorder()

	h.Agents(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var body []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	require.Len(t, body, 1)
	require.Equal(t, "Hassan", body[0].Name)
}

func TestConsoleHandler_Assign_OK(t *testing.T) {
	t.Parallel()

	called := false
	uc := &stubConsoleUsecase{
		assignFn: func(_ context.Context, sess session.Session, kind domain.Kind, workItemID, deliveryID, notes string) error {
			called = true
			require.Equal(t, "admin-1", sess.AssignerID)
			require.Equal(t, domain.KindRepair, kind)
			require.Equal(t, "req-9", workItemID)
			require.Equal(t, "d2", deliveryID)
			require.Equal(t, "call first", notes)
			return nil
		},
	}
	h := handlers.NewConsoleHandler(testLogger(), uc)

	payload := `{"kind":"repair","workItemId":"req-9","deliveryId":"d2","notes":"call first"}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/console/assignments", strings.NewReader(payload)))
	rr := httptest.NewRecorder()

	h.Assign(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	require.True(t, called)
}

func TestConsoleHandler_Assign_ValidationError(t *testing.T) {
	t.Parallel()

	h := handlers.NewConsoleHandler(testLogger(), &stubConsoleUsecase{
		assignFn: func(context.Context, session.Session, domain.Kind, string, string, string) error {
			return apperr.ErrValidation
		},
	})

	payload := `{"kind":"ORDER","workItemId":"","deliveryId":"d2"}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/console/assignments", strings.NewReader(payload)))
	rr := httptest.NewRecorder()

	h.Assign(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestConsoleHandler_Assign_BadJSON(t *testing.T) {
	t.Parallel()

	h := handlers.NewConsoleHandler(testLogger(), &stubConsoleUsecase{
		assignFn: func(context.Context, session.Session, domain.Kind, string, string, string) error {
			require.FailNow(t, "usecase must not be called on bad json")
			return nil
		},
	})

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/console/assignments", strings.NewReader("{")))
	rr := httptest.NewRecorder()

	h.Assign(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestConsoleHandler_Assign_BackendErrorSurfacesMessage(t *testing.T) {
	t.Parallel()

	h := handlers.NewConsoleHandler(testLogger(), &stubConsoleUsecase{
		assignFn: func(context.Context, session.Session, domain.Kind, string, string, string) error {
			return &apperr.BackendError{Status: http.StatusConflict, Message: "already assigned"}
		},
	})

	payload := `{"kind":"ORDER","workItemId":"o1","deliveryId":"d2"}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/console/assignments", strings.NewReader(payload)))
	rr := httptest.NewRecorder()

	h.Assign(rr, req)

	require.Equal(t, http.StatusConflict, rr.Code)

	var body handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	require.Equal(t, "already assigned", body.Error)
}

func TestConsoleHandler_Reassign_OK(t *testing.T) {
	t.Parallel()

	uc := &stubConsoleUsecase{
		reassignFn: func(_ context.Context, _ session.Session, kind domain.Kind, workItemID, newDeliveryID, notes string) error {
			require.Equal(t, domain.KindOrder, kind)
			require.Equal(t, "o-7", workItemID)
			require.Equal(t, "d3", newDeliveryID)
			require.Equal(t, "", notes)
			return nil
		},
	}
	h := handlers.NewConsoleHandler(testLogger(), uc)

	payload := `{"newDeliveryId":"d3"}`
	req := withSession(httptest.NewRequest(http.MethodPut, "/api/console/assignments/order/o-7", strings.NewReader(payload)))
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("kind", "order")
	routeCtx.URLParams.Add("id", "o-7")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	rr := httptest.NewRecorder()

	h.Reassign(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
}

func TestConsoleHandler_WorkItems_CancelledCycleWritesNothing(t *testing.T) {
	t.Parallel()

	uc := &stubConsoleUsecase{
		snapshotFn: func(context.Context, session.Session, domain.Kind, string) ([]domain.WorkItem, error) {
			return nil, context.Canceled
		},
	}
	h := handlers.NewConsoleHandler(testLogger(), uc)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/console/work-items", nil))
	rr := httptest.NewRecorder()

	h.WorkItems(rr, req)

	// the client is gone: no error body, no explicit status
	require.Empty(t, rr.Body.String())
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestConsoleHandler_WorkItems_BackendTimeout(t *testing.T) {
	t.Parallel()

	uc := &stubConsoleUsecase{
		snapshotFn: func(context.Context, session.Session, domain.Kind, string) ([]domain.WorkItem, error) {
			return nil, context.DeadlineExceeded
		},
	}
	h := handlers.NewConsoleHandler(testLogger(), uc)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/console/work-items", nil))
	rr := httptest.NewRecorder()

	h.WorkItems(rr, req)

	require.Equal(t, http.StatusGatewayTimeout, rr.Code)
	require.Contains(t, rr.Body.String(), "backend timeout")
}
