package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/wingbank/appconfig/internal/domain"
	"github.com/wingbank/appconfig/pkg/localized"
)

// NotificationRepo stores templates plus one (title, body) row per language.
type NotificationRepo struct {
	DB          *sql.DB
	Driver      string
	TablePrefix string
}

func (r *NotificationRepo) table() string  { return r.TablePrefix + "notification_templates" }
func (r *NotificationRepo) values() string { return r.TablePrefix + "notification_template_values" }

const notificationCols = "id, code, type, status, created_at, updated_at"

// List returns one page of templates with values attached.
func (r *NotificationRepo) List(ctx context.Context, f Filter) ([]domain.NotificationTemplate, int, error) {
	where := " WHERE is_deleted = FALSE"
	args := []any{}
	if f.Search != "" {
		where += " AND code LIKE ?"
		args = append(args, "%"+f.Search+"%")
	}
	limit, offset := f.limits()
	q := "SELECT " + notificationCols + " FROM " + r.table() + where + " ORDER BY code LIMIT ? OFFSET ?"
	rows, err := r.DB.QueryContext(ctx, bind(r.Driver, q), append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []domain.NotificationTemplate
	var ids []string
	for rows.Next() {
		var n domain.NotificationTemplate
		if err := rows.Scan(&n.ID, &n.Code, &n.Type, &n.Status, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, 0, err
		}
		n.Values = localized.ValueSet{}
		items = append(items, n)
		ids = append(ids, n.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(ids) > 0 {
		byID := make(map[string]int, len(items))
		for i, n := range items {
			byID[n.ID] = i
		}
		vq := "SELECT template_id, language_code, title, body FROM " + r.values() +
			" WHERE template_id IN (" + placeholders(len(ids)) + ")"
		vargs := make([]any, len(ids))
		for i, id := range ids {
			vargs[i] = id
		}
		vrows, err := r.DB.QueryContext(ctx, bind(r.Driver, vq), vargs...)
		if err != nil {
			return nil, 0, err
		}
		defer vrows.Close()
		for vrows.Next() {
			var id, code string
			var title, body sql.NullString
			if err := vrows.Scan(&id, &code, &title, &body); err != nil {
				return nil, 0, err
			}
			if i, ok := byID[id]; ok {
				items[i].Values.Set(code, "title", title.String)
				items[i].Values.Set(code, "body", body.String)
			}
		}
		if err := vrows.Err(); err != nil {
			return nil, 0, err
		}
	}
	var total int
	cq := "SELECT COUNT(*) FROM " + r.table() + where
	if err := r.DB.QueryRowContext(ctx, bind(r.Driver, cq), args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Get returns one template with values or sql.ErrNoRows.
func (r *NotificationRepo) Get(ctx context.Context, id string) (domain.NotificationTemplate, error) {
	q := bind(r.Driver, "SELECT "+notificationCols+" FROM "+r.table()+" WHERE id = ? AND is_deleted = FALSE")
	var n domain.NotificationTemplate
	err := r.DB.QueryRowContext(ctx, q, id).
		Scan(&n.ID, &n.Code, &n.Type, &n.Status, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return n, err
	}
	n.Values = localized.ValueSet{}
	vq := bind(r.Driver, "SELECT language_code, title, body FROM "+r.values()+" WHERE template_id = ?")
	rows, err := r.DB.QueryContext(ctx, vq, n.ID)
	if err != nil {
		return n, err
	}
	defer rows.Close()
	for rows.Next() {
		var code string
		var title, body sql.NullString
		if err := rows.Scan(&code, &title, &body); err != nil {
			return n, err
		}
		n.Values.Set(code, "title", title.String)
		n.Values.Set(code, "body", body.String)
	}
	return n, rows.Err()
}

// Create inserts a template and its values in one transaction.
func (r *NotificationRepo) Create(ctx context.Context, n domain.NotificationTemplate) (domain.NotificationTemplate, error) {
	n.ID = uuid.NewString()
	now := time.Now().UTC()
	n.CreatedAt, n.UpdatedAt = now, now
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return n, err
	}
	defer tx.Rollback()
	q := bind(r.Driver, "INSERT INTO "+r.table()+
		" (id, code, type, status, is_deleted, created_at, updated_at) VALUES (?, ?, ?, ?, FALSE, ?, ?)")
	if _, err := tx.ExecContext(ctx, q, n.ID, n.Code, n.Type, n.Status, n.CreatedAt, n.UpdatedAt); err != nil {
		return n, err
	}
	if err := r.upsertValues(ctx, tx, n.ID, n.Values); err != nil {
		return n, err
	}
	return n, tx.Commit()
}

// Update overwrites fixed fields and merges supplied language values.
func (r *NotificationRepo) Update(ctx context.Context, n domain.NotificationTemplate) (domain.NotificationTemplate, error) {
	n.UpdatedAt = time.Now().UTC()
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return n, err
	}
	defer tx.Rollback()
	q := bind(r.Driver, "UPDATE "+r.table()+
		" SET code = ?, type = ?, status = ?, updated_at = ? WHERE id = ? AND is_deleted = FALSE")
	res, err := tx.ExecContext(ctx, q, n.Code, n.Type, n.Status, n.UpdatedAt, n.ID)
	if err != nil {
		return n, err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return n, sql.ErrNoRows
	}
	if err := r.upsertValues(ctx, tx, n.ID, n.Values); err != nil {
		return n, err
	}
	return n, tx.Commit()
}

// SoftDelete hides a template.
func (r *NotificationRepo) SoftDelete(ctx context.Context, id string) error {
	q := bind(r.Driver, "UPDATE "+r.table()+" SET is_deleted = TRUE, updated_at = ? WHERE id = ?")
	res, err := r.DB.ExecContext(ctx, q, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *NotificationRepo) upsertValues(ctx context.Context, tx *sql.Tx, id string, vs localized.ValueSet) error {
	up := bind(r.Driver, "UPDATE "+r.values()+" SET title = ?, body = ? WHERE template_id = ? AND language_code = ?")
	ins := bind(r.Driver, "INSERT INTO "+r.values()+" (template_id, language_code, title, body) VALUES (?, ?, ?, ?)")
	for _, code := range vs.Codes() {
		title := vs.Get(code, "title")
		body := vs.Get(code, "body")
		res, err := tx.ExecContext(ctx, up, title, body, id, code)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			if _, err := tx.ExecContext(ctx, ins, id, code, title, body); err != nil {
				return err
			}
		}
	}
	return nil
}
