package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/wingbank/appconfig/internal/domain"
	"github.com/wingbank/appconfig/pkg/localized"
)

// AppLanguageRepo provides access to the app languages table.
type AppLanguageRepo struct {
	DB          *sql.DB
	Driver      string
	TablePrefix string
}

func (r *AppLanguageRepo) table() string { return r.TablePrefix + "app_languages" }

const langCols = "id, code, name, native_name, status, display_order, created_at, updated_at"

// List returns one page of languages plus the filtered total.
func (r *AppLanguageRepo) List(ctx context.Context, f Filter) ([]domain.AppLanguage, int, error) {
	where := " WHERE is_deleted = FALSE"
	args := []any{}
	if f.Search != "" {
		where += " AND (code LIKE ? OR name LIKE ?)"
		like := "%" + f.Search + "%"
		args = append(args, like, like)
	}
	if f.Status != "" {
		where += " AND status = ?"
		args = append(args, f.Status)
	}
	limit, offset := f.limits()
	q := "SELECT " + langCols + " FROM " + r.table() + where + " ORDER BY display_order, code LIMIT ? OFFSET ?"
	rows, err := r.DB.QueryContext(ctx, bind(r.Driver, q), append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []domain.AppLanguage
	for rows.Next() {
		l, err := scanLanguage(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, l)
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

// ListActive returns every ACTIVE language in display order.
func (r *AppLanguageRepo) ListActive(ctx context.Context) ([]domain.AppLanguage, error) {
	q := "SELECT " + langCols + " FROM " + r.table() +
		" WHERE is_deleted = FALSE AND status = 'ACTIVE' ORDER BY display_order, code"
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.AppLanguage
	for rows.Next() {
		l, err := scanLanguage(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	return items, rows.Err()
}

// Load implements localized.Loader against the active language set, making
// this repo the server-side source for language registry snapshots.
func (r *AppLanguageRepo) Load(ctx context.Context) ([]localized.Language, error) {
	active, err := r.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	langs := make([]localized.Language, 0, len(active))
	for _, l := range active {
		langs = append(langs, localized.Language{Code: l.Code, Label: l.Name})
	}
	return langs, nil
}

// Get returns one language or sql.ErrNoRows.
func (r *AppLanguageRepo) Get(ctx context.Context, id string) (domain.AppLanguage, error) {
	q := bind(r.Driver, "SELECT "+langCols+" FROM "+r.table()+" WHERE id = ? AND is_deleted = FALSE")
	return scanLanguage(r.DB.QueryRowContext(ctx, q, id))
}

// Create inserts a language and returns it with generated fields set.
func (r *AppLanguageRepo) Create(ctx context.Context, l domain.AppLanguage) (domain.AppLanguage, error) {
	l.ID = uuid.NewString()
	now := time.Now().UTC()
	l.CreatedAt, l.UpdatedAt = now, now
	q := bind(r.Driver, "INSERT INTO "+r.table()+
		" (id, code, name, native_name, status, display_order, is_deleted, created_at, updated_at)"+
		" VALUES (?, ?, ?, ?, ?, ?, FALSE, ?, ?)")
	_, err := r.DB.ExecContext(ctx, q, l.ID, l.Code, l.Name, l.NativeName, l.Status, l.DisplayOrder, l.CreatedAt, l.UpdatedAt)
	return l, err
}

// Update overwrites a language's editable fields.
func (r *AppLanguageRepo) Update(ctx context.Context, l domain.AppLanguage) (domain.AppLanguage, error) {
	l.UpdatedAt = time.Now().UTC()
	q := bind(r.Driver, "UPDATE "+r.table()+
		" SET code = ?, name = ?, native_name = ?, status = ?, display_order = ?, updated_at = ?"+
		" WHERE id = ? AND is_deleted = FALSE")
	res, err := r.DB.ExecContext(ctx, q, l.Code, l.Name, l.NativeName, l.Status, l.DisplayOrder, l.UpdatedAt, l.ID)
	if err != nil {
		return l, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return l, sql.ErrNoRows
	}
	return l, nil
}

// SoftDelete hides a language from every query without destroying it.
func (r *AppLanguageRepo) SoftDelete(ctx context.Context, id string) error {
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

type rowScanner interface{ Scan(dest ...any) error }

func scanLanguage(row rowScanner) (domain.AppLanguage, error) {
	var l domain.AppLanguage
	var native sql.NullString
	err := row.Scan(&l.ID, &l.Code, &l.Name, &native, &l.Status, &l.DisplayOrder, &l.CreatedAt, &l.UpdatedAt)
	if native.Valid {
		l.NativeName = native.String
	}
	return l, err
}
