package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"tech-assigner/internal/domain"
)

// AuditRepo persists the append-only assignment audit trail. Records come
// from two sources: operator actions issued through this console and
// assignment events consumed from the backend's Kafka topic.
type AuditRepo struct {
	db *pgxpool.Pool
}

// NewAuditRepo creates a new AuditRepo.
func NewAuditRepo(db *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{db: db}
}

// EnsureSchema creates the audit table when it does not exist yet.
func (r *AuditRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS assignment_audit (
            id           UUID PRIMARY KEY,
            kind         TEXT NOT NULL,
            work_item_id TEXT NOT NULL,
            delivery_id  TEXT NOT NULL,
            assigner_id  TEXT NOT NULL DEFAULT '',
            action       TEXT NOT NULL,
            notes        TEXT NOT NULL DEFAULT '',
            source       TEXT NOT NULL,
            created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
        )
    `)
	if err != nil {
		return fmt.Errorf("ensure audit schema: %w", err)
	}
	_, err = r.db.Exec(ctx, `
        CREATE INDEX IF NOT EXISTS assignment_audit_work_item_idx
        ON assignment_audit (work_item_id, created_at DESC)
    `)
	if err != nil {
		return fmt.Errorf("ensure audit index: %w", err)
	}
	return nil
}

// Record appends one assignment action. An empty id gets a fresh UUID;
// replays of the same id are ignored, the trail never rewrites history.
func (r *AuditRepo) Record(ctx context.Context, a domain.AssignmentAction) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	_, err := r.db.Exec(ctx, `
        INSERT INTO assignment_audit
            (id, kind, work_item_id, delivery_id, assigner_id, action, notes, source, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        ON CONFLICT (id) DO NOTHING
    `, a.ID, string(a.Kind), a.WorkItemID, a.DeliveryID, a.AssignerID,
		string(a.Action), a.Notes, string(a.Source), a.CreatedAt)
	if err != nil {
		return fmt.Errorf("record assignment action %q: %w", a.WorkItemID, err)
	}
	return nil
}

// List returns the most recent actions, newest first.
func (r *AuditRepo) List(ctx context.Context, limit int) ([]domain.AssignmentAction, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx, `
        SELECT id, kind, work_item_id, delivery_id, assigner_id, action, notes, source, created_at
        FROM assignment_audit
        ORDER BY created_at DESC, id
        LIMIT $1
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("list assignment actions: %w", err)
	}
	defer rows.Close()
	return scanActions(rows)
}

// ListByWorkItem returns the action history of one work item, newest first.
func (r *AuditRepo) ListByWorkItem(ctx context.Context, workItemID string) ([]domain.AssignmentAction, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, kind, work_item_id, delivery_id, assigner_id, action, notes, source, created_at
        FROM assignment_audit
        WHERE work_item_id = $1
        ORDER BY created_at DESC, id
    `, workItemID)
	if err != nil {
		return nil, fmt.Errorf("list actions for %q: %w", workItemID, err)
	}
	defer rows.Close()
	return scanActions(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanActions(rows rowScanner) ([]domain.AssignmentAction, error) {
	var out []domain.AssignmentAction
	for rows.Next() {
		var (
			a                    domain.AssignmentAction
			kind, action, source string
		)
		if err := rows.Scan(&a.ID, &kind, &a.WorkItemID, &a.DeliveryID,
			&a.AssignerID, &action, &a.Notes, &source, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan assignment action: %w", err)
		}
		a.Kind = domain.Kind(kind)
		a.Action = domain.Action(action)
		a.Source = domain.ActionSource(source)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assignment actions: %w", err)
	}
	return out, nil
}
