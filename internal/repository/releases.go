package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/wingbank/appconfig/internal/domain"
)

// AppReleaseRepo provides access to the app releases table.
type AppReleaseRepo struct {
	DB          *sql.DB
	Driver      string
	TablePrefix string
}

func (r *AppReleaseRepo) table() string { return r.TablePrefix + "app_releases" }

const releaseCols = "id, version, platform, force_update, min_os_version, release_notes, status, created_at, updated_at"

// List returns one page of releases, newest first.
func (r *AppReleaseRepo) List(ctx context.Context, f Filter) ([]domain.AppRelease, int, error) {
	where := " WHERE is_deleted = FALSE"
	args := []any{}
	if f.Search != "" {
		where += " AND (version LIKE ? OR platform LIKE ?)"
		like := "%" + f.Search + "%"
		args = append(args, like, like)
	}
	limit, offset := f.limits()
	q := "SELECT " + releaseCols + " FROM " + r.table() + where + " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	rows, err := r.DB.QueryContext(ctx, bind(r.Driver, q), append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []domain.AppRelease
	for rows.Next() {
		rel, err := scanRelease(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rel)
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

// Latest returns the newest ACTIVE release for a platform, or sql.ErrNoRows.
func (r *AppReleaseRepo) Latest(ctx context.Context, platform string) (domain.AppRelease, error) {
	q := bind(r.Driver, "SELECT "+releaseCols+" FROM "+r.table()+
		" WHERE is_deleted = FALSE AND status = 'ACTIVE' AND platform = ?"+
		" ORDER BY created_at DESC LIMIT 1")
	return scanRelease(r.DB.QueryRowContext(ctx, q, platform))
}

// Get returns one release or sql.ErrNoRows.
func (r *AppReleaseRepo) Get(ctx context.Context, id string) (domain.AppRelease, error) {
	q := bind(r.Driver, "SELECT "+releaseCols+" FROM "+r.table()+" WHERE id = ? AND is_deleted = FALSE")
	return scanRelease(r.DB.QueryRowContext(ctx, q, id))
}

// Create inserts a release.
func (r *AppReleaseRepo) Create(ctx context.Context, rel domain.AppRelease) (domain.AppRelease, error) {
	rel.ID = uuid.NewString()
	now := time.Now().UTC()
	rel.CreatedAt, rel.UpdatedAt = now, now
	q := bind(r.Driver, "INSERT INTO "+r.table()+
		" (id, version, platform, force_update, min_os_version, release_notes, status, is_deleted, created_at, updated_at)"+
		" VALUES (?, ?, ?, ?, ?, ?, ?, FALSE, ?, ?)")
	_, err := r.DB.ExecContext(ctx, q, rel.ID, rel.Version, rel.Platform, rel.ForceUpdate,
		rel.MinOSVersion, rel.ReleaseNotes, rel.Status, rel.CreatedAt, rel.UpdatedAt)
	return rel, err
}

// Update overwrites a release's editable fields.
func (r *AppReleaseRepo) Update(ctx context.Context, rel domain.AppRelease) (domain.AppRelease, error) {
	rel.UpdatedAt = time.Now().UTC()
	q := bind(r.Driver, "UPDATE "+r.table()+
		" SET version = ?, platform = ?, force_update = ?, min_os_version = ?, release_notes = ?, status = ?, updated_at = ?"+
		" WHERE id = ? AND is_deleted = FALSE")
	res, err := r.DB.ExecContext(ctx, q, rel.Version, rel.Platform, rel.ForceUpdate,
		rel.MinOSVersion, rel.ReleaseNotes, rel.Status, rel.UpdatedAt, rel.ID)
	if err != nil {
		return rel, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return rel, sql.ErrNoRows
	}
	return rel, nil
}

// SoftDelete hides a release.
func (r *AppReleaseRepo) SoftDelete(ctx context.Context, id string) error {
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

func scanRelease(row rowScanner) (domain.AppRelease, error) {
	var rel domain.AppRelease
	var minOS, notes sql.NullString
	err := row.Scan(&rel.ID, &rel.Version, &rel.Platform, &rel.ForceUpdate, &minOS, &notes,
		&rel.Status, &rel.CreatedAt, &rel.UpdatedAt)
	rel.MinOSVersion = minOS.String
	rel.ReleaseNotes = notes.String
	return rel, err
}
