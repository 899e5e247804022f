package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/wingbank/appconfig/internal/domain"
	"github.com/wingbank/appconfig/pkg/localized"
)

// WingPartnerRepo stores Wing+ partners plus one (name, description) row per
// language.
type WingPartnerRepo struct {
	DB          *sql.DB
	Driver      string
	TablePrefix string
}

func (r *WingPartnerRepo) table() string  { return r.TablePrefix + "wing_partners" }
func (r *WingPartnerRepo) values() string { return r.TablePrefix + "wing_partner_values" }

const partnerCols = "id, code, icon, bg_color, badge, is_new, sort_order, status, created_at, updated_at"

// List returns one page of partners with values attached.
func (r *WingPartnerRepo) List(ctx context.Context, f Filter) ([]domain.WingPartner, int, error) {
	where := " WHERE is_deleted = FALSE"
	args := []any{}
	if f.Search != "" {
		where += " AND code LIKE ?"
		args = append(args, "%"+f.Search+"%")
	}
	if f.Status != "" {
		where += " AND status = ?"
		args = append(args, f.Status)
	}
	limit, offset := f.limits()
	q := "SELECT " + partnerCols + " FROM " + r.table() + where + " ORDER BY sort_order, code LIMIT ? OFFSET ?"
	rows, err := r.DB.QueryContext(ctx, bind(r.Driver, q), append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []domain.WingPartner
	var ids []string
	for rows.Next() {
		p, err := scanWingPartner(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(ids) > 0 {
		byID := make(map[string]int, len(items))
		for i, p := range items {
			byID[p.ID] = i
		}
		vq := "SELECT partner_id, language_code, name, description FROM " + r.values() +
			" WHERE partner_id IN (" + placeholders(len(ids)) + ")"
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
			var name, desc sql.NullString
			if err := vrows.Scan(&id, &code, &name, &desc); err != nil {
				return nil, 0, err
			}
			if i, ok := byID[id]; ok {
				items[i].Values.Set(code, "name", name.String)
				items[i].Values.Set(code, "description", desc.String)
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

// Get returns one partner with values or sql.ErrNoRows.
func (r *WingPartnerRepo) Get(ctx context.Context, id string) (domain.WingPartner, error) {
	q := bind(r.Driver, "SELECT "+partnerCols+" FROM "+r.table()+" WHERE id = ? AND is_deleted = FALSE")
	p, err := scanWingPartner(r.DB.QueryRowContext(ctx, q, id))
	if err != nil {
		return p, err
	}
	vq := bind(r.Driver, "SELECT language_code, name, description FROM "+r.values()+" WHERE partner_id = ?")
	rows, err := r.DB.QueryContext(ctx, vq, p.ID)
	if err != nil {
		return p, err
	}
	defer rows.Close()
	for rows.Next() {
		var code string
		var name, desc sql.NullString
		if err := rows.Scan(&code, &name, &desc); err != nil {
			return p, err
		}
		p.Values.Set(code, "name", name.String)
		p.Values.Set(code, "description", desc.String)
	}
	return p, rows.Err()
}

// Create inserts a partner and its values in one transaction.
func (r *WingPartnerRepo) Create(ctx context.Context, p domain.WingPartner) (domain.WingPartner, error) {
	p.ID = uuid.NewString()
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return p, err
	}
	defer tx.Rollback()
	q := bind(r.Driver, "INSERT INTO "+r.table()+
		" (id, code, icon, bg_color, badge, is_new, sort_order, status, is_deleted, created_at, updated_at)"+
		" VALUES (?, ?, ?, ?, ?, ?, ?, ?, FALSE, ?, ?)")
	if _, err := tx.ExecContext(ctx, q, p.ID, p.Code, p.Icon, p.BgColor, p.Badge, p.IsNew, p.SortOrder, p.Status, p.CreatedAt, p.UpdatedAt); err != nil {
		return p, err
	}
	if err := r.upsertValues(ctx, tx, p.ID, p.Values); err != nil {
		return p, err
	}
	return p, tx.Commit()
}

// Update overwrites fixed fields and merges supplied language values.
func (r *WingPartnerRepo) Update(ctx context.Context, p domain.WingPartner) (domain.WingPartner, error) {
	p.UpdatedAt = time.Now().UTC()
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return p, err
	}
	defer tx.Rollback()
	q := bind(r.Driver, "UPDATE "+r.table()+
		" SET code = ?, icon = ?, bg_color = ?, badge = ?, is_new = ?, sort_order = ?, status = ?, updated_at = ?"+
		" WHERE id = ? AND is_deleted = FALSE")
	res, err := tx.ExecContext(ctx, q, p.Code, p.Icon, p.BgColor, p.Badge, p.IsNew, p.SortOrder, p.Status, p.UpdatedAt, p.ID)
	if err != nil {
		return p, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return p, sql.ErrNoRows
	}
	if err := r.upsertValues(ctx, tx, p.ID, p.Values); err != nil {
		return p, err
	}
	return p, tx.Commit()
}

// SoftDelete hides a partner.
func (r *WingPartnerRepo) SoftDelete(ctx context.Context, id string) error {
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

func (r *WingPartnerRepo) upsertValues(ctx context.Context, tx *sql.Tx, id string, vs localized.ValueSet) error {
	up := bind(r.Driver, "UPDATE "+r.values()+
		" SET name = ?, description = ? WHERE partner_id = ? AND language_code = ?")
	ins := bind(r.Driver, "INSERT INTO "+r.values()+
		" (partner_id, language_code, name, description) VALUES (?, ?, ?, ?)")
	for _, code := range vs.Codes() {
		name := vs.Get(code, "name")
		desc := vs.Get(code, "description")
		res, err := tx.ExecContext(ctx, up, name, desc, id, code)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			if _, err := tx.ExecContext(ctx, ins, id, code, name, desc); err != nil {
				return err
			}
		}
	}
	return nil
}

func scanWingPartner(row rowScanner) (domain.WingPartner, error) {
	var p domain.WingPartner
	var icon, bg, badge sql.NullString
	err := row.Scan(&p.ID, &p.Code, &icon, &bg, &badge, &p.IsNew, &p.SortOrder, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return p, err
	}
	p.Icon = icon.String
	p.BgColor = bg.String
	p.Badge = badge.String
	p.Values = localized.ValueSet{}
	return p, nil
}
