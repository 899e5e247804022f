package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/wingbank/appconfig/internal/domain"
)

// AuditLogRepo reads the audit trail written by the events audit sink. Rows
// are append-only; there is no write path here.
type AuditLogRepo struct {
	DB          *sql.DB
	Driver      string
	TablePrefix string
}

func (r *AuditLogRepo) table() string { return r.TablePrefix + "audit_logs" }

// AuditFilter narrows the audit trail. Search matches actor and entity id.
type AuditFilter struct {
	Search     string
	EntityType string
	Action     string
	From       time.Time
	To         time.Time
	Page       int
	Size       int
}

const auditCols = "id, actor, action, entity_type, entity_id, payload, created_at"

// List returns one page of audit entries, newest first.
func (r *AuditLogRepo) List(ctx context.Context, f AuditFilter) ([]domain.AuditLog, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	if f.Search != "" {
		where += " AND (actor LIKE ? OR entity_id LIKE ?)"
		like := "%" + f.Search + "%"
		args = append(args, like, like)
	}
	if f.EntityType != "" {
		where += " AND entity_type = ?"
		args = append(args, f.EntityType)
	}
	if f.Action != "" {
		where += " AND action = ?"
		args = append(args, f.Action)
	}
	if !f.From.IsZero() {
		where += " AND created_at >= ?"
		args = append(args, f.From)
	}
	if !f.To.IsZero() {
		where += " AND created_at <= ?"
		args = append(args, f.To)
	}
	limit, offset := Filter{Page: f.Page, Size: f.Size}.limits()
	q := "SELECT " + auditCols + " FROM " + r.table() + where + " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	rows, err := r.DB.QueryContext(ctx, bind(r.Driver, q), append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []domain.AuditLog
	for rows.Next() {
		var a domain.AuditLog
		var payload sql.NullString
		if err := rows.Scan(&a.ID, &a.Actor, &a.Action, &a.EntityType, &a.EntityID, &payload, &a.CreatedAt); err != nil {
			return nil, 0, err
		}
		a.Payload = payload.String
		items = append(items, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	var total int
	cq := "SELECT COUNT(*) FROM " + r.table() + where
	if err := r.DB.QueryRowContext(ctx, bind(r.Driver, cq), args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
