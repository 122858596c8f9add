package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"tech-assigner/internal/domain"
	"tech-assigner/internal/logx"
	"tech-assigner/internal/service/listing"
	"tech-assigner/internal/session"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ConsoleHandler serves the operator console API: the merged work item view,
// delivery agents and the assignment actions.
type ConsoleHandler struct {
	usecase consoleUsecase
	logger  logx.Logger
}

// NewConsoleHandler creates a new ConsoleHandler.
func NewConsoleHandler(logger logx.Logger, uc consoleUsecase) *ConsoleHandler {
	return &ConsoleHandler{usecase: uc, logger: logger}
}

// WorkItems handles GET /api/console/work-items.
// Query: kind=ORDER|REPAIR, q=<search>, page=<1-based>, size=<page size>,
// deliveryId=<narrow the assignment log to one agent>.
func (h *ConsoleHandler) WorkItems(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "session expired")
		return
	}

	q := r.URL.Query()
	kind := domain.Kind(strings.ToUpper(strings.TrimSpace(q.Get("kind"))))
	if kind == "" {
		kind = domain.KindOrder
	}
	if !kind.Valid() {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid kind")
		return
	}

	page := intQuery(q.Get("page"), 1)
	size := intQuery(q.Get("size"), defaultPageSize)
	if page < 1 || size < 1 || size > maxPageSize {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid page window")
		return
	}

	items, err := h.usecase.Snapshot(r.Context(), sess, kind, q.Get("deliveryId"))
	if err != nil {
		respondErr(h.logger, w, r, err)
		return
	}

	filtered := listing.Filter(items, q.Get("q"))
	window := listing.Paginate(filtered, page, size)
	totalPages := listing.TotalPages(len(filtered), size)

	writeJSON(h.logger, w, r, http.StatusOK, workItemPageResponse{
		Items:       workItemsToResponse(window),
		Page:        page,
		Size:        size,
		TotalItems:  len(filtered),
		TotalPages:  totalPages,
		PageNumbers: listing.PageNumbers(page, totalPages),
	})
}

// Agents handles GET /api/console/delivery-agents.
func (h *ConsoleHandler) Agents(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "session expired")
		return
	}

	agents, err := h.usecase.Agents(r.Context(), sess)
	if err != nil {
		respondErr(h.logger, w, r, err)
		return
	}

	out := make([]agentResponse, 0, len(agents))
	for _, a := range agents {
		out = append(out, agentToResponse(a))
	}
	writeJSON(h.logger, w, r, http.StatusOK, out)
}

// Assign handles POST /api/console/assignments.
func (h *ConsoleHandler) Assign(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "session expired")
		return
	}

	var req assignRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	kind := domain.Kind(strings.ToUpper(strings.TrimSpace(req.Kind)))
	err := h.usecase.Assign(r.Context(), sess, kind, req.WorkItemID, req.DeliveryID, req.Notes)
	if err != nil {
		respondErr(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusCreated, map[string]string{"status": "assigned"})
}

// Reassign handles PUT /api/console/assignments/{kind}/{id}.
func (h *ConsoleHandler) Reassign(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		writeError(h.logger, w, r, http.StatusUnauthorized, "session expired")
		return
	}

	kind := domain.Kind(strings.ToUpper(chi.URLParam(r, "kind")))
	workItemID := chi.URLParam(r, "id")

	var req reassignRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	err := h.usecase.Reassign(r.Context(), sess, kind, workItemID, req.NewDeliveryID, req.Notes)
	if err != nil {
		respondErr(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, map[string]string{"status": "reassigned"})
}

func intQuery(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return n
}
