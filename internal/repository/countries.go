package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/wingbank/appconfig/internal/domain"
)

// CountryRepo provides access to the countries reference table.
type CountryRepo struct {
	DB          *sql.DB
	Driver      string
	TablePrefix string
}

func (r *CountryRepo) table() string { return r.TablePrefix + "countries" }

const countryCols = "id, code, name, dial_code, flag_url, status, created_at, updated_at"

// List returns one page of countries ordered by name.
func (r *CountryRepo) List(ctx context.Context, f Filter) ([]domain.Country, int, error) {
	where := " WHERE is_deleted = FALSE"
	args := []any{}
	if f.Search != "" {
		where += " AND (code LIKE ? OR name LIKE ?)"
		like := "%" + f.Search + "%"
		args = append(args, like, like)
	}
	limit, offset := f.limits()
	q := "SELECT " + countryCols + " FROM " + r.table() + where + " ORDER BY name LIMIT ? OFFSET ?"
	rows, err := r.DB.QueryContext(ctx, bind(r.Driver, q), append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []domain.Country
	for rows.Next() {
		c, err := scanCountry(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, c)
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

// ListActive returns every ACTIVE country; used by mobile endpoints.
func (r *CountryRepo) ListActive(ctx context.Context) ([]domain.Country, error) {
	q := "SELECT " + countryCols + " FROM " + r.table() +
		" WHERE is_deleted = FALSE AND status = 'ACTIVE' ORDER BY name"
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.Country
	for rows.Next() {
		c, err := scanCountry(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// Get returns one country or sql.ErrNoRows.
func (r *CountryRepo) Get(ctx context.Context, id string) (domain.Country, error) {
	q := bind(r.Driver, "SELECT "+countryCols+" FROM "+r.table()+" WHERE id = ? AND is_deleted = FALSE")
	return scanCountry(r.DB.QueryRowContext(ctx, q, id))
}

// Create inserts a country.
func (r *CountryRepo) Create(ctx context.Context, c domain.Country) (domain.Country, error) {
	c.ID = uuid.NewString()
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	q := bind(r.Driver, "INSERT INTO "+r.table()+
		" (id, code, name, dial_code, flag_url, status, is_deleted, created_at, updated_at)"+
		" VALUES (?, ?, ?, ?, ?, ?, FALSE, ?, ?)")
	_, err := r.DB.ExecContext(ctx, q, c.ID, c.Code, c.Name, c.DialCode, c.FlagURL, c.Status, c.CreatedAt, c.UpdatedAt)
	return c, err
}

// Update overwrites a country's editable fields.
func (r *CountryRepo) Update(ctx context.Context, c domain.Country) (domain.Country, error) {
	c.UpdatedAt = time.Now().UTC()
	q := bind(r.Driver, "UPDATE "+r.table()+
		" SET name = ?, dial_code = ?, flag_url = ?, status = ?, updated_at = ?"+
		" WHERE id = ? AND is_deleted = FALSE")
	res, err := r.DB.ExecContext(ctx, q, c.Name, c.DialCode, c.FlagURL, c.Status, c.UpdatedAt, c.ID)
	if err != nil {
		return c, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return c, sql.ErrNoRows
	}
	return c, nil
}

// SoftDelete hides a country.
func (r *CountryRepo) SoftDelete(ctx context.Context, id string) error {
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

func scanCountry(row rowScanner) (domain.Country, error) {
	var c domain.Country
	var flag sql.NullString
	err := row.Scan(&c.ID, &c.Code, &c.Name, &c.DialCode, &flag, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	c.FlagURL = flag.String
	return c, err
}
