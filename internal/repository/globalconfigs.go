package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/wingbank/appconfig/internal/domain"
)

// GlobalConfigRepo provides access to global key/value configuration.
type GlobalConfigRepo struct {
	DB          *sql.DB
	Driver      string
	TablePrefix string
}

func (r *GlobalConfigRepo) table() string { return r.TablePrefix + "global_configs" }

const configCols = "id, config_key, config_value, value_type, description, created_at, updated_at"

// List returns one page of config entries ordered by key.
func (r *GlobalConfigRepo) List(ctx context.Context, f Filter) ([]domain.GlobalConfig, int, error) {
	where := " WHERE is_deleted = FALSE"
	args := []any{}
	if f.Search != "" {
		where += " AND config_key LIKE ?"
		args = append(args, "%"+f.Search+"%")
	}
	limit, offset := f.limits()
	q := "SELECT " + configCols + " FROM " + r.table() + where + " ORDER BY config_key LIMIT ? OFFSET ?"
	rows, err := r.DB.QueryContext(ctx, bind(r.Driver, q), append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []domain.GlobalConfig
	for rows.Next() {
		c, err := scanConfig(rows)
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

// ListAll returns every config entry; used by the mobile config endpoint.
func (r *GlobalConfigRepo) ListAll(ctx context.Context) ([]domain.GlobalConfig, error) {
	q := "SELECT " + configCols + " FROM " + r.table() + " WHERE is_deleted = FALSE ORDER BY config_key"
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []domain.GlobalConfig
	for rows.Next() {
		c, err := scanConfig(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// Get returns one config entry or sql.ErrNoRows.
func (r *GlobalConfigRepo) Get(ctx context.Context, id string) (domain.GlobalConfig, error) {
	q := bind(r.Driver, "SELECT "+configCols+" FROM "+r.table()+" WHERE id = ? AND is_deleted = FALSE")
	return scanConfig(r.DB.QueryRowContext(ctx, q, id))
}

// Create inserts a config entry.
func (r *GlobalConfigRepo) Create(ctx context.Context, c domain.GlobalConfig) (domain.GlobalConfig, error) {
	c.ID = uuid.NewString()
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	q := bind(r.Driver, "INSERT INTO "+r.table()+
		" (id, config_key, config_value, value_type, description, is_deleted, created_at, updated_at)"+
		" VALUES (?, ?, ?, ?, ?, FALSE, ?, ?)")
	_, err := r.DB.ExecContext(ctx, q, c.ID, c.Key, c.Value, c.Type, c.Description, c.CreatedAt, c.UpdatedAt)
	return c, err
}

// Update overwrites a config entry's value, type and description.
func (r *GlobalConfigRepo) Update(ctx context.Context, c domain.GlobalConfig) (domain.GlobalConfig, error) {
	c.UpdatedAt = time.Now().UTC()
	q := bind(r.Driver, "UPDATE "+r.table()+
		" SET config_value = ?, value_type = ?, description = ?, updated_at = ?"+
		" WHERE id = ? AND is_deleted = FALSE")
	res, err := r.DB.ExecContext(ctx, q, c.Value, c.Type, c.Description, c.UpdatedAt, c.ID)
	if err != nil {
		return c, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return c, sql.ErrNoRows
	}
	return c, nil
}

// SoftDelete hides a config entry.
func (r *GlobalConfigRepo) SoftDelete(ctx context.Context, id string) error {
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

func scanConfig(row rowScanner) (domain.GlobalConfig, error) {
	var c domain.GlobalConfig
	var desc sql.NullString
	err := row.Scan(&c.ID, &c.Key, &c.Value, &c.Type, &desc, &c.CreatedAt, &c.UpdatedAt)
	c.Description = desc.String
	return c, err
}
