package auth

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func newUserRepo(t *testing.T) (*UserRepo, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	repo := &UserRepo{DB: db, Driver: "mysql", TablePrefix: "wingcfg_"}
	return repo, mock, func() { db.Close() }
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "password_hash", "email", "full_name", "phone", "role", "status", "created_at", "updated_at"})
}

func TestUserRepoGetByUsername(t *testing.T) {
	repo, mock, done := newUserRepo(t)
	defer done()

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, username, password_hash, email, full_name, phone, role, status, created_at, updated_at FROM wingcfg_users WHERE username = ?")).
		WithArgs("sok").
		WillReturnRows(userRows().AddRow("u1", "sok", "$2a$hash", "sok@wingbank.com.kh", "Sok Dara", nil, "editor", "ACTIVE", now, now))

	u, err := repo.GetByUsername(context.Background(), "sok")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if u == nil || u.Email != "sok@wingbank.com.kh" || u.Role != "editor" {
		t.Fatalf("user = %+v", u)
	}
}

func TestUserRepoGetByUsernameAbsent(t *testing.T) {
	repo, mock, done := newUserRepo(t)
	defer done()

	mock.ExpectQuery("SELECT").WillReturnRows(userRows())
	u, err := repo.GetByUsername(context.Background(), "ghost")
	if err != nil || u != nil {
		t.Fatalf("u=%+v err=%v, want nil,nil", u, err)
	}
}

func TestUserRepoSetRoleMissing(t *testing.T) {
	repo, mock, done := newUserRepo(t)
	defer done()

	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE wingcfg_users SET role = ?, updated_at = ? WHERE id = ?")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	if err := repo.SetRole(context.Background(), "ghost", "viewer"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("err=%v, want sql.ErrNoRows", err)
	}
}

func TestUserRepoCreateFillsDefaults(t *testing.T) {
	repo, mock, done := newUserRepo(t)
	defer done()

	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO wingcfg_users (id, username, password_hash, email, full_name, phone, role, status, created_at, updated_at)")).
		WillReturnResult(sqlmock.NewResult(1, 1))

	u, err := repo.Create(context.Background(), User{Username: "sok", PasswordHash: "h", Role: "viewer"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == "" || u.Status != "ACTIVE" || u.CreatedAt.IsZero() {
		t.Fatalf("defaults not filled: %+v", u)
	}
}
