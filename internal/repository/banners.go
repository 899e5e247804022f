package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/wingbank/appconfig/internal/domain"
	"github.com/wingbank/appconfig/pkg/localized"
)

// WingBannerRepo stores Wing+ banners plus one (title, subtitle, image_url)
// row per language.
type WingBannerRepo struct {
	DB          *sql.DB
	Driver      string
	TablePrefix string
}

func (r *WingBannerRepo) table() string  { return r.TablePrefix + "wing_banners" }
func (r *WingBannerRepo) values() string { return r.TablePrefix + "wing_banner_values" }

const bannerCols = "id, code, link_url, display_order, status, created_at, updated_at"

// List returns one page of banners with values attached.
func (r *WingBannerRepo) List(ctx context.Context, f Filter) ([]domain.WingBanner, int, error) {
	where := " WHERE is_deleted = FALSE"
	args := []any{}
	if f.Search != "" {
		where += " AND code LIKE ?"
		args = append(args, "%"+f.Search+"%")
	}
	limit, offset := f.limits()
	q := "SELECT " + bannerCols + " FROM " + r.table() + where + " ORDER BY display_order, code LIMIT ? OFFSET ?"
	rows, err := r.DB.QueryContext(ctx, bind(r.Driver, q), append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []domain.WingBanner
	var ids []string
	for rows.Next() {
		var b domain.WingBanner
		var link sql.NullString
		if err := rows.Scan(&b.ID, &b.Code, &link, &b.DisplayOrder, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, 0, err
		}
		b.LinkURL = link.String
		b.Values = localized.ValueSet{}
		items = append(items, b)
		ids = append(ids, b.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(ids) > 0 {
		byID := make(map[string]int, len(items))
		for i, b := range items {
			byID[b.ID] = i
		}
		vq := "SELECT banner_id, language_code, title, subtitle, image_url FROM " + r.values() +
			" WHERE banner_id IN (" + placeholders(len(ids)) + ")"
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
			var title, subtitle, image sql.NullString
			if err := vrows.Scan(&id, &code, &title, &subtitle, &image); err != nil {
				return nil, 0, err
			}
			if i, ok := byID[id]; ok {
				items[i].Values.Set(code, "title", title.String)
				items[i].Values.Set(code, "subtitle", subtitle.String)
				items[i].Values.Set(code, "imageUrl", image.String)
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

// Get returns one banner with values or sql.ErrNoRows.
func (r *WingBannerRepo) Get(ctx context.Context, id string) (domain.WingBanner, error) {
	q := bind(r.Driver, "SELECT "+bannerCols+" FROM "+r.table()+" WHERE id = ? AND is_deleted = FALSE")
	var b domain.WingBanner
	var link sql.NullString
	err := r.DB.QueryRowContext(ctx, q, id).
		Scan(&b.ID, &b.Code, &link, &b.DisplayOrder, &b.Status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return b, err
	}
	b.LinkURL = link.String
	b.Values = localized.ValueSet{}
	vq := bind(r.Driver, "SELECT language_code, title, subtitle, image_url FROM "+r.values()+" WHERE banner_id = ?")
	rows, err := r.DB.QueryContext(ctx, vq, b.ID)
	if err != nil {
		return b, err
	}
	defer rows.Close()
	for rows.Next() {
		var code string
		var title, subtitle, image sql.NullString
		if err := rows.Scan(&code, &title, &subtitle, &image); err != nil {
			return b, err
		}
		b.Values.Set(code, "title", title.String)
		b.Values.Set(code, "subtitle", subtitle.String)
		b.Values.Set(code, "imageUrl", image.String)
	}
	return b, rows.Err()
}

// Create inserts a banner and its values in one transaction.
func (r *WingBannerRepo) Create(ctx context.Context, b domain.WingBanner) (domain.WingBanner, error) {
	b.ID = uuid.NewString()
	now := time.Now().UTC()
	b.CreatedAt, b.UpdatedAt = now, now
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return b, err
	}
	defer tx.Rollback()
	q := bind(r.Driver, "INSERT INTO "+r.table()+
		" (id, code, link_url, display_order, status, is_deleted, created_at, updated_at)"+
		" VALUES (?, ?, ?, ?, ?, FALSE, ?, ?)")
	if _, err := tx.ExecContext(ctx, q, b.ID, b.Code, b.LinkURL, b.DisplayOrder, b.Status, b.CreatedAt, b.UpdatedAt); err != nil {
		return b, err
	}
	if err := r.upsertValues(ctx, tx, b.ID, b.Values); err != nil {
		return b, err
	}
	return b, tx.Commit()
}

// Update overwrites fixed fields and merges supplied language values.
func (r *WingBannerRepo) Update(ctx context.Context, b domain.WingBanner) (domain.WingBanner, error) {
	b.UpdatedAt = time.Now().UTC()
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return b, err
	}
	defer tx.Rollback()
	q := bind(r.Driver, "UPDATE "+r.table()+
		" SET code = ?, link_url = ?, display_order = ?, status = ?, updated_at = ?"+
		" WHERE id = ? AND is_deleted = FALSE")
	res, err := tx.ExecContext(ctx, q, b.Code, b.LinkURL, b.DisplayOrder, b.Status, b.UpdatedAt, b.ID)
	if err != nil {
		return b, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return b, sql.ErrNoRows
	}
	if err := r.upsertValues(ctx, tx, b.ID, b.Values); err != nil {
		return b, err
	}
	return b, tx.Commit()
}

// SoftDelete hides a banner.
func (r *WingBannerRepo) SoftDelete(ctx context.Context, id string) error {
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

func (r *WingBannerRepo) upsertValues(ctx context.Context, tx *sql.Tx, id string, vs localized.ValueSet) error {
	up := bind(r.Driver, "UPDATE "+r.values()+
		" SET title = ?, subtitle = ?, image_url = ? WHERE banner_id = ? AND language_code = ?")
	ins := bind(r.Driver, "INSERT INTO "+r.values()+
		" (banner_id, language_code, title, subtitle, image_url) VALUES (?, ?, ?, ?, ?)")
	for _, code := range vs.Codes() {
		title := vs.Get(code, "title")
		subtitle := vs.Get(code, "subtitle")
		image := vs.Get(code, "imageUrl")
		res, err := tx.ExecContext(ctx, up, title, subtitle, image, id, code)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			if _, err := tx.ExecContext(ctx, ins, id, code, title, subtitle, image); err != nil {
				return err
			}
		}
	}
	return nil
}
