package events_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/wingbank/appconfig/internal/events"
)

func TestSQLAuditSplitsEventName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	sink := &events.SQLAudit{DB: db, Driver: "mysql", TablePrefix: "wingcfg_"}
	evt := events.Event{
		ID:     "e1",
		Name:   "banner.updated",
		Entity: "b1",
		Actor:  "admin",
		Time:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO wingcfg_audit_logs(actor, action, entity_type, entity_id, payload, created_at) VALUES (?, ?, ?, ?, ?, ?)")).
		WithArgs("admin", "updated", "banner", "b1", "", evt.Time).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := sink.Emit(context.Background(), evt); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestSQLAuditRecordsPayload(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	sink := &events.SQLAudit{DB: db, Driver: "mysql", TablePrefix: "wingcfg_"}
	evt := events.Event{
		Name:   "user.updated",
		Entity: "u1",
		Actor:  "admin",
		Time:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Data:   map[string]string{"role": "editor"},
	}
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO wingcfg_audit_logs")).
		WithArgs("admin", "updated", "user", "u1", `{"role":"editor"}`, evt.Time).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := sink.Emit(context.Background(), evt); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
