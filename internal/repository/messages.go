package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/wingbank/appconfig/internal/domain"
	"github.com/wingbank/appconfig/pkg/localized"
)

// ApiMessageRepo stores API messages plus one message row per language code.
type ApiMessageRepo struct {
	DB          *sql.DB
	Driver      string
	TablePrefix string
}

func (r *ApiMessageRepo) table() string  { return r.TablePrefix + "api_messages" }
func (r *ApiMessageRepo) values() string { return r.TablePrefix + "api_message_values" }

const messageCols = "id, error_code, type, http_status, created_at, updated_at"

// List returns one page of messages with values attached.
func (r *ApiMessageRepo) List(ctx context.Context, f Filter) ([]domain.ApiMessage, int, error) {
	where := " WHERE is_deleted = FALSE"
	args := []any{}
	if f.Search != "" {
		where += " AND error_code LIKE ?"
		args = append(args, "%"+f.Search+"%")
	}
	limit, offset := f.limits()
	q := "SELECT " + messageCols + " FROM " + r.table() + where + " ORDER BY error_code LIMIT ? OFFSET ?"
	rows, err := r.DB.QueryContext(ctx, bind(r.Driver, q), append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []domain.ApiMessage
	var ids []string
	for rows.Next() {
		var m domain.ApiMessage
		if err := rows.Scan(&m.ID, &m.ErrorCode, &m.Type, &m.HTTPStatus, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, 0, err
		}
		m.Values = localized.ValueSet{}
		items = append(items, m)
		ids = append(ids, m.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(ids) > 0 {
		byID := make(map[string]int, len(items))
		for i, m := range items {
			byID[m.ID] = i
		}
		vq := "SELECT message_id, language_code, message FROM " + r.values() +
			" WHERE message_id IN (" + placeholders(len(ids)) + ")"
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
			var id, code, msg string
			if err := vrows.Scan(&id, &code, &msg); err != nil {
				return nil, 0, err
			}
			if i, ok := byID[id]; ok {
				items[i].Values.Set(code, "Message", msg)
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

// Get returns one message with values or sql.ErrNoRows.
func (r *ApiMessageRepo) Get(ctx context.Context, id string) (domain.ApiMessage, error) {
	q := bind(r.Driver, "SELECT "+messageCols+" FROM "+r.table()+" WHERE id = ? AND is_deleted = FALSE")
	var m domain.ApiMessage
	err := r.DB.QueryRowContext(ctx, q, id).
		Scan(&m.ID, &m.ErrorCode, &m.Type, &m.HTTPStatus, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return m, err
	}
	m.Values = localized.ValueSet{}
	vq := bind(r.Driver, "SELECT language_code, message FROM "+r.values()+" WHERE message_id = ?")
	rows, err := r.DB.QueryContext(ctx, vq, m.ID)
	if err != nil {
		return m, err
	}
	defer rows.Close()
	for rows.Next() {
		var code, msg string
		if err := rows.Scan(&code, &msg); err != nil {
			return m, err
		}
		m.Values.Set(code, "Message", msg)
	}
	return m, rows.Err()
}

// Create inserts a message and its values in one transaction.
func (r *ApiMessageRepo) Create(ctx context.Context, m domain.ApiMessage) (domain.ApiMessage, error) {
	m.ID = uuid.NewString()
	now := time.Now().UTC()
	m.CreatedAt, m.UpdatedAt = now, now
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return m, err
	}
	defer tx.Rollback()
	q := bind(r.Driver, "INSERT INTO "+r.table()+
		" (id, error_code, type, http_status, is_deleted, created_at, updated_at)"+
		" VALUES (?, ?, ?, ?, FALSE, ?, ?)")
	if _, err := tx.ExecContext(ctx, q, m.ID, m.ErrorCode, m.Type, m.HTTPStatus, m.CreatedAt, m.UpdatedAt); err != nil {
		return m, err
	}
	if err := r.upsertValues(ctx, tx, m.ID, m.Values); err != nil {
		return m, err
	}
	return m, tx.Commit()
}

// Update overwrites fixed fields and merges supplied language values.
func (r *ApiMessageRepo) Update(ctx context.Context, m domain.ApiMessage) (domain.ApiMessage, error) {
	m.UpdatedAt = time.Now().UTC()
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return m, err
	}
	defer tx.Rollback()
	q := bind(r.Driver, "UPDATE "+r.table()+
		" SET error_code = ?, type = ?, http_status = ?, updated_at = ? WHERE id = ? AND is_deleted = FALSE")
	res, err := tx.ExecContext(ctx, q, m.ErrorCode, m.Type, m.HTTPStatus, m.UpdatedAt, m.ID)
	if err != nil {
		return m, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return m, sql.ErrNoRows
	}
	if err := r.upsertValues(ctx, tx, m.ID, m.Values); err != nil {
		return m, err
	}
	return m, tx.Commit()
}

// SoftDelete hides a message.
func (r *ApiMessageRepo) SoftDelete(ctx context.Context, id string) error {
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

// ForMobile returns errorCode -> message for one language with en fallback.
func (r *ApiMessageRepo) ForMobile(ctx context.Context, lang string) (map[string]string, error) {
	q := bind(r.Driver, "SELECT m.error_code, v.language_code, v.message FROM "+r.table()+" m"+
		" JOIN "+r.values()+" v ON v.message_id = m.id"+
		" WHERE m.is_deleted = FALSE AND v.language_code IN (?, 'en') ORDER BY m.error_code")
	rows, err := r.DB.QueryContext(ctx, q, lang)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]string)
	fallback := make(map[string]string)
	for rows.Next() {
		var code, langCode, msg string
		if err := rows.Scan(&code, &langCode, &msg); err != nil {
			return nil, err
		}
		if langCode == lang {
			out[code] = msg
		} else {
			fallback[code] = msg
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for k, v := range fallback {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return out, nil
}

func (r *ApiMessageRepo) upsertValues(ctx context.Context, tx *sql.Tx, id string, vs localized.ValueSet) error {
	up := bind(r.Driver, "UPDATE "+r.values()+" SET message = ? WHERE message_id = ? AND language_code = ?")
	ins := bind(r.Driver, "INSERT INTO "+r.values()+" (message_id, language_code, message) VALUES (?, ?, ?)")
	for _, code := range vs.Codes() {
		msg := vs.Get(code, "Message")
		res, err := tx.ExecContext(ctx, up, msg, id, code)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			if _, err := tx.ExecContext(ctx, ins, id, code, msg); err != nil {
				return err
			}
		}
	}
	return nil
}
