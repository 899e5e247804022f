package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
)

func newAuditRepo(t *testing.T) (*AuditLogRepo, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	repo := &AuditLogRepo{DB: db, Driver: "mysql", TablePrefix: "wingcfg_"}
	return repo, mock, func() { db.Close() }
}

func TestAuditLogRepoListNewestFirst(t *testing.T) {
	repo, mock, done := newAuditRepo(t)
	defer done()

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, actor, action, entity_type, entity_id, payload, created_at FROM wingcfg_audit_logs"+
			" WHERE 1=1 ORDER BY created_at DESC LIMIT ? OFFSET ?")).
		WithArgs(50, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "actor", "action", "entity_type", "entity_id", "payload", "created_at"}).
			AddRow(2, "admin", "updated", "banner", "b1", "", now).
			AddRow(1, "admin", "created", "banner", "b1", "", now.Add(-time.Hour)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM wingcfg_audit_logs WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	items, total, err := repo.List(context.Background(), AuditFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("total=%d items=%d", total, len(items))
	}
	if items[0].ID != 2 || items[0].Action != "updated" {
		t.Fatalf("first item = %+v, want the newest entry", items[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAuditLogRepoListFilters(t *testing.T) {
	repo, mock, done := newAuditRepo(t)
	defer done()

	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, actor, action, entity_type, entity_id, payload, created_at FROM wingcfg_audit_logs"+
			" WHERE 1=1 AND (actor LIKE ? OR entity_id LIKE ?) AND entity_type = ? AND action = ?"+
			" AND created_at >= ? ORDER BY created_at DESC LIMIT ? OFFSET ?")).
		WithArgs("%admin%", "%admin%", "translation", "deleted", from, 20, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "actor", "action", "entity_type", "entity_id", "payload", "created_at"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM wingcfg_audit_logs WHERE 1=1")).
		WithArgs("%admin%", "%admin%", "translation", "deleted", from).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, total, err := repo.List(context.Background(), AuditFilter{
		Search:     "admin",
		EntityType: "translation",
		Action:     "deleted",
		From:       from,
		Page:       1,
		Size:       20,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 0 {
		t.Fatalf("total=%d", total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
