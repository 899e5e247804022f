package auth

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// User represents an admin portal user.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Email        string
	FullName     string
	Phone        string
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserRepo provides access to the users table.
type UserRepo struct {
	DB          *sql.DB
	Driver      string
	TablePrefix string
}

func (r *UserRepo) table() string { return r.TablePrefix + "users" }

const userCols = "id, username, password_hash, email, full_name, phone, role, status, created_at, updated_at"

func (r *UserRepo) bind(q string) string {
	if r.Driver != "postgres" {
		return q
	}
	out := ""
	n := 0
	for _, c := range q {
		if c == '?' {
			n++
			out += fmt.Sprintf("$%d", n)
			continue
		}
		out += string(c)
	}
	return out
}

type userScanner interface{ Scan(dest ...any) error }

func scanUser(row userScanner) (User, error) {
	var u User
	var email, full, phone sql.NullString
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &email, &full, &phone, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return u, err
	}
	u.Email = email.String
	u.FullName = full.String
	u.Phone = phone.String
	return u, nil
}

// GetByUsername returns a user by name, or nil when absent.
func (r *UserRepo) GetByUsername(ctx context.Context, name string) (*User, error) {
	if r == nil || r.DB == nil {
		return nil, fmt.Errorf("repo not initialized")
	}
	q := r.bind("SELECT " + userCols + " FROM " + r.table() + " WHERE username = ?")
	u, err := scanUser(r.DB.QueryRowContext(ctx, q, name))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// GetRole returns the role for a username; empty when the user is unknown.
func (r *UserRepo) GetRole(ctx context.Context, name string) (string, error) {
	u, err := r.GetByUsername(ctx, name)
	if err != nil || u == nil {
		return "", err
	}
	return u.Role, nil
}

// Get returns one user by id or sql.ErrNoRows.
func (r *UserRepo) Get(ctx context.Context, id string) (User, error) {
	q := r.bind("SELECT " + userCols + " FROM " + r.table() + " WHERE id = ?")
	return scanUser(r.DB.QueryRowContext(ctx, q, id))
}

// List returns one page of users ordered by username. Search matches
// username, email and full name.
func (r *UserRepo) List(ctx context.Context, search string, page, size int) ([]User, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	if search != "" {
		where += " AND (username LIKE ? OR email LIKE ? OR full_name LIKE ?)"
		like := "%" + search + "%"
		args = append(args, like, like, like)
	}
	q := r.bind("SELECT " + userCols + " FROM " + r.table() + where + " ORDER BY username LIMIT ? OFFSET ?")
	rows, err := r.DB.QueryContext(ctx, q, append(args, size, page*size)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	var total int
	cq := r.bind("SELECT COUNT(*) FROM " + r.table() + where)
	if err := r.DB.QueryRowContext(ctx, cq, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Create inserts a user. The caller supplies the bcrypt hash.
func (r *UserRepo) Create(ctx context.Context, u User) (User, error) {
	u.ID = uuid.NewString()
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	if u.Status == "" {
		u.Status = "ACTIVE"
	}
	q := r.bind("INSERT INTO " + r.table() +
		" (id, username, password_hash, email, full_name, phone, role, status, created_at, updated_at)" +
		" VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	_, err := r.DB.ExecContext(ctx, q, u.ID, u.Username, u.PasswordHash, u.Email, u.FullName, u.Phone, u.Role, u.Status, u.CreatedAt, u.UpdatedAt)
	return u, err
}

// Update overwrites profile fields. An empty PasswordHash keeps the stored
// one.
func (r *UserRepo) Update(ctx context.Context, u User) (User, error) {
	u.UpdatedAt = time.Now().UTC()
	set := "SET email = ?, full_name = ?, phone = ?, role = ?, status = ?, updated_at = ?"
	args := []any{u.Email, u.FullName, u.Phone, u.Role, u.Status, u.UpdatedAt}
	if u.PasswordHash != "" {
		set += ", password_hash = ?"
		args = append(args, u.PasswordHash)
	}
	q := r.bind("UPDATE " + r.table() + " " + set + " WHERE id = ?")
	res, err := r.DB.ExecContext(ctx, q, append(args, u.ID)...)
	if err != nil {
		return u, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return u, sql.ErrNoRows
	}
	return r.Get(ctx, u.ID)
}

// SetRole assigns a role to one user.
func (r *UserRepo) SetRole(ctx context.Context, id, role string) error {
	q := r.bind("UPDATE " + r.table() + " SET role = ?, updated_at = ? WHERE id = ?")
	res, err := r.DB.ExecContext(ctx, q, role, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a user permanently.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	q := r.bind("DELETE FROM " + r.table() + " WHERE id = ?")
	res, err := r.DB.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
