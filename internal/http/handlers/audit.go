package handlers

import (
	"net/http"

	"tech-assigner/internal/domain"
	"tech-assigner/internal/logx"
)

// AuditHandler serves the locally persisted assignment audit trail.
type AuditHandler struct {
	reader auditReader
	logger logx.Logger
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(logger logx.Logger, reader auditReader) *AuditHandler {
	return &AuditHandler{reader: reader, logger: logger}
}

// List handles GET /api/console/audit.
// Query: workItemId=<one item's history>, limit=<max records, default 50>.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		actions []domain.AssignmentAction
		err     error
	)
	if workItemID := q.Get("workItemId"); workItemID != "" {
		actions, err = h.reader.ListByWorkItem(r.Context(), workItemID)
	} else {
		actions, err = h.reader.List(r.Context(), intQuery(q.Get("limit"), 0))
	}
	if err != nil {
		respondErr(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, actionsToResponse(actions))
}
