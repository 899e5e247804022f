package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/wingbank/appconfig/internal/domain"
	"github.com/wingbank/appconfig/pkg/localized"
)

// WingCategoryRepo stores Wing+ categories plus one (name, display_name) row
// per language.
type WingCategoryRepo struct {
	DB          *sql.DB
	Driver      string
	TablePrefix string
}

func (r *WingCategoryRepo) table() string  { return r.TablePrefix + "wing_categories" }
func (r *WingCategoryRepo) values() string { return r.TablePrefix + "wing_category_values" }

const categoryCols = "id, category_key, icon, image_url, sort_order, status, created_at, updated_at"

// List returns one page of categories with values attached.
func (r *WingCategoryRepo) List(ctx context.Context, f Filter) ([]domain.WingCategory, int, error) {
	where := " WHERE is_deleted = FALSE"
	args := []any{}
	if f.Search != "" {
		where += " AND category_key LIKE ?"
		args = append(args, "%"+f.Search+"%")
	}
	if f.Status != "" {
		where += " AND status = ?"
		args = append(args, f.Status)
	}
	limit, offset := f.limits()
	q := "SELECT " + categoryCols + " FROM " + r.table() + where + " ORDER BY sort_order, category_key LIMIT ? OFFSET ?"
	rows, err := r.DB.QueryContext(ctx, bind(r.Driver, q), append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []domain.WingCategory
	var ids []string
	for rows.Next() {
		c, err := scanWingCategory(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, c)
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(ids) > 0 {
		byID := make(map[string]int, len(items))
		for i, c := range items {
			byID[c.ID] = i
		}
		vq := "SELECT category_id, language_code, name, display_name FROM " + r.values() +
			" WHERE category_id IN (" + placeholders(len(ids)) + ")"
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
			var name, display sql.NullString
			if err := vrows.Scan(&id, &code, &name, &display); err != nil {
				return nil, 0, err
			}
			if i, ok := byID[id]; ok {
				items[i].Values.Set(code, "name", name.String)
				items[i].Values.Set(code, "displayName", display.String)
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

// Get returns one category with values or sql.ErrNoRows.
func (r *WingCategoryRepo) Get(ctx context.Context, id string) (domain.WingCategory, error) {
	q := bind(r.Driver, "SELECT "+categoryCols+" FROM "+r.table()+" WHERE id = ? AND is_deleted = FALSE")
	c, err := scanWingCategory(r.DB.QueryRowContext(ctx, q, id))
	if err != nil {
		return c, err
	}
	vq := bind(r.Driver, "SELECT language_code, name, display_name FROM "+r.values()+" WHERE category_id = ?")
	rows, err := r.DB.QueryContext(ctx, vq, c.ID)
	if err != nil {
		return c, err
	}
	defer rows.Close()
	for rows.Next() {
		var code string
		var name, display sql.NullString
		if err := rows.Scan(&code, &name, &display); err != nil {
			return c, err
		}
		c.Values.Set(code, "name", name.String)
		c.Values.Set(code, "displayName", display.String)
	}
	return c, rows.Err()
}

// Create inserts a category and its values in one transaction.
func (r *WingCategoryRepo) Create(ctx context.Context, c domain.WingCategory) (domain.WingCategory, error) {
	c.ID = uuid.NewString()
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return c, err
	}
	defer tx.Rollback()
	q := bind(r.Driver, "INSERT INTO "+r.table()+
		" (id, category_key, icon, image_url, sort_order, status, is_deleted, created_at, updated_at)"+
		" VALUES (?, ?, ?, ?, ?, ?, FALSE, ?, ?)")
	if _, err := tx.ExecContext(ctx, q, c.ID, c.Key, c.Icon, c.ImageURL, c.SortOrder, c.Status, c.CreatedAt, c.UpdatedAt); err != nil {
		return c, err
	}
	if err := r.upsertValues(ctx, tx, c.ID, c.Values); err != nil {
		return c, err
	}
	return c, tx.Commit()
}

// Update overwrites fixed fields and merges supplied language values.
func (r *WingCategoryRepo) Update(ctx context.Context, c domain.WingCategory) (domain.WingCategory, error) {
	c.UpdatedAt = time.Now().UTC()
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return c, err
	}
	defer tx.Rollback()
	q := bind(r.Driver, "UPDATE "+r.table()+
		" SET category_key = ?, icon = ?, image_url = ?, sort_order = ?, status = ?, updated_at = ?"+
		" WHERE id = ? AND is_deleted = FALSE")
	res, err := tx.ExecContext(ctx, q, c.Key, c.Icon, c.ImageURL, c.SortOrder, c.Status, c.UpdatedAt, c.ID)
	if err != nil {
		return c, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return c, sql.ErrNoRows
	}
	if err := r.upsertValues(ctx, tx, c.ID, c.Values); err != nil {
		return c, err
	}
	return c, tx.Commit()
}

// SoftDelete hides a category.
func (r *WingCategoryRepo) SoftDelete(ctx context.Context, id string) error {
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

func (r *WingCategoryRepo) upsertValues(ctx context.Context, tx *sql.Tx, id string, vs localized.ValueSet) error {
	up := bind(r.Driver, "UPDATE "+r.values()+
		" SET name = ?, display_name = ? WHERE category_id = ? AND language_code = ?")
	ins := bind(r.Driver, "INSERT INTO "+r.values()+
		" (category_id, language_code, name, display_name) VALUES (?, ?, ?, ?)")
	for _, code := range vs.Codes() {
		name := vs.Get(code, "name")
		display := vs.Get(code, "displayName")
		res, err := tx.ExecContext(ctx, up, name, display, id, code)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			if _, err := tx.ExecContext(ctx, ins, id, code, name, display); err != nil {
				return err
			}
		}
	}
	return nil
}

func scanWingCategory(row rowScanner) (domain.WingCategory, error) {
	var c domain.WingCategory
	var icon, image sql.NullString
	err := row.Scan(&c.ID, &c.Key, &icon, &image, &c.SortOrder, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return c, err
	}
	c.Icon = icon.String
	c.ImageURL = image.String
	c.Values = localized.ValueSet{}
	return c, nil
}
