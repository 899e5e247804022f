package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/wingbank/appconfig/internal/domain"
	"github.com/wingbank/appconfig/pkg/localized"
)

// TranslationRepo stores translations as a parent row plus one value row per
// language code.
type TranslationRepo struct {
	DB          *sql.DB
	Driver      string
	TablePrefix string
}

func (r *TranslationRepo) table() string  { return r.TablePrefix + "translations" }
func (r *TranslationRepo) values() string { return r.TablePrefix + "translation_values" }

const translationCols = "id, translation_key, module, version, platform, created_at, updated_at"

// TranslationFilter adds the module/platform narrowing the admin list offers.
type TranslationFilter struct {
	Filter
	Module   string
	Platform string
}

// List returns one page of translations with values attached.
func (r *TranslationRepo) List(ctx context.Context, f TranslationFilter) ([]domain.Translation, int, error) {
	where := " WHERE is_deleted = FALSE"
	args := []any{}
	if f.Search != "" {
		where += " AND translation_key LIKE ?"
		args = append(args, "%"+f.Search+"%")
	}
	if f.Module != "" {
		where += " AND module = ?"
		args = append(args, f.Module)
	}
	if f.Platform != "" {
		where += " AND platform = ?"
		args = append(args, f.Platform)
	}
	limit, offset := f.limits()
	q := "SELECT " + translationCols + " FROM " + r.table() + where + " ORDER BY translation_key LIMIT ? OFFSET ?"
	rows, err := r.DB.QueryContext(ctx, bind(r.Driver, q), append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []domain.Translation
	var ids []string
	for rows.Next() {
		var t domain.Translation
		if err := rows.Scan(&t.ID, &t.Key, &t.Module, &t.Version, &t.Platform, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, err
		}
		t.Values = localized.ValueSet{}
		items = append(items, t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if err := r.attachValues(ctx, ids, items); err != nil {
		return nil, 0, err
	}
	var total int
	cq := "SELECT COUNT(*) FROM " + r.table() + where
	if err := r.DB.QueryRowContext(ctx, bind(r.Driver, cq), args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Get returns one translation with values or sql.ErrNoRows.
func (r *TranslationRepo) Get(ctx context.Context, id string) (domain.Translation, error) {
	q := bind(r.Driver, "SELECT "+translationCols+" FROM "+r.table()+" WHERE id = ? AND is_deleted = FALSE")
	var t domain.Translation
	err := r.DB.QueryRowContext(ctx, q, id).
		Scan(&t.ID, &t.Key, &t.Module, &t.Version, &t.Platform, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return t, err
	}
	t.Values = localized.ValueSet{}
	vq := bind(r.Driver, "SELECT language_code, value FROM "+r.values()+" WHERE translation_id = ?")
	rows, err := r.DB.QueryContext(ctx, vq, t.ID)
	if err != nil {
		return t, err
	}
	defer rows.Close()
	for rows.Next() {
		var code, val string
		if err := rows.Scan(&code, &val); err != nil {
			return t, err
		}
		t.Values.Set(code, "Value", val)
	}
	return t, rows.Err()
}

// Create inserts a translation and its per-language values in one
// transaction.
func (r *TranslationRepo) Create(ctx context.Context, t domain.Translation) (domain.Translation, error) {
	t.ID = uuid.NewString()
	now := time.Now().UTC()
	t.CreatedAt, t.UpdatedAt = now, now
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return t, err
	}
	defer tx.Rollback()
	q := bind(r.Driver, "INSERT INTO "+r.table()+
		" (id, translation_key, module, version, platform, is_deleted, created_at, updated_at)"+
		" VALUES (?, ?, ?, ?, ?, FALSE, ?, ?)")
	if _, err := tx.ExecContext(ctx, q, t.ID, t.Key, t.Module, t.Version, t.Platform, t.CreatedAt, t.UpdatedAt); err != nil {
		return t, err
	}
	if err := r.upsertValues(ctx, tx, t.ID, t.Values); err != nil {
		return t, err
	}
	return t, tx.Commit()
}

// Update overwrites the fixed fields and merges the supplied language values.
// Languages absent from t.Values keep their stored rows: an edit submitted
// under an older language snapshot must not drop values it never saw.
func (r *TranslationRepo) Update(ctx context.Context, t domain.Translation) (domain.Translation, error) {
	t.UpdatedAt = time.Now().UTC()
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return t, err
	}
	defer tx.Rollback()
	q := bind(r.Driver, "UPDATE "+r.table()+
		" SET translation_key = ?, module = ?, version = ?, platform = ?, updated_at = ?"+
		" WHERE id = ? AND is_deleted = FALSE")
	res, err := tx.ExecContext(ctx, q, t.Key, t.Module, t.Version, t.Platform, t.UpdatedAt, t.ID)
	if err != nil {
		return t, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return t, sql.ErrNoRows
	}
	if err := r.upsertValues(ctx, tx, t.ID, t.Values); err != nil {
		return t, err
	}
	return t, tx.Commit()
}

// SoftDelete hides a translation; value rows stay for recovery.
func (r *TranslationRepo) SoftDelete(ctx context.Context, id string) error {
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

// ForMobile returns key -> value for one language with en fallback, filtered
// by platform.
func (r *TranslationRepo) ForMobile(ctx context.Context, lang, platform string) (map[string]string, error) {
	q := bind(r.Driver, "SELECT t.translation_key, v.language_code, v.value FROM "+r.table()+" t"+
		" JOIN "+r.values()+" v ON v.translation_id = t.id"+
		" WHERE t.is_deleted = FALSE AND (t.platform = 'ALL' OR t.platform = ?)"+
		" AND v.language_code IN (?, 'en') ORDER BY t.translation_key")
	rows, err := r.DB.QueryContext(ctx, q, platform, lang)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]string)
	fallback := make(map[string]string)
	for rows.Next() {
		var key, code, val string
		if err := rows.Scan(&key, &code, &val); err != nil {
			return nil, err
		}
		if code == lang {
			out[key] = val
		} else {
			fallback[key] = val
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

func (r *TranslationRepo) attachValues(ctx context.Context, ids []string, items []domain.Translation) error {
	if len(ids) == 0 || len(items) == 0 {
		return nil
	}
	byID := make(map[string]int, len(items))
	for i, t := range items {
		byID[t.ID] = i
	}
	q := "SELECT translation_id, language_code, value FROM " + r.values() +
		" WHERE translation_id IN (" + placeholders(len(ids)) + ")"
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	rows, err := r.DB.QueryContext(ctx, bind(r.Driver, q), args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id, code, val string
		if err := rows.Scan(&id, &code, &val); err != nil {
			return err
		}
		if i, ok := byID[id]; ok {
			items[i].Values.Set(code, "Value", val)
		}
	}
	return rows.Err()
}

func (r *TranslationRepo) upsertValues(ctx context.Context, tx *sql.Tx, id string, vs localized.ValueSet) error {
	up := bind(r.Driver, "UPDATE "+r.values()+" SET value = ? WHERE translation_id = ? AND language_code = ?")
	ins := bind(r.Driver, "INSERT INTO "+r.values()+" (translation_id, language_code, value) VALUES (?, ?, ?)")
	for _, code := range vs.Codes() {
		val := vs.Get(code, "Value")
		res, err := tx.ExecContext(ctx, up, val, id, code)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			if _, err := tx.ExecContext(ctx, ins, id, code, val); err != nil {
				return err
			}
		}
	}
	return nil
}
