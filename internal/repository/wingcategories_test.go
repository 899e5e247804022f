package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"github.com/wingbank/appconfig/internal/domain"
	"github.com/wingbank/appconfig/pkg/localized"
)

func newWingCategoryRepo(t *testing.T) (*WingCategoryRepo, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	repo := &WingCategoryRepo{DB: db, Driver: "mysql", TablePrefix: "wingcfg_"}
	return repo, mock, func() { db.Close() }
}

func TestWingCategoryRepoGet(t *testing.T) {
	repo, mock, done := newWingCategoryRepo(t)
	defer done()

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, category_key, icon, image_url, sort_order, status, created_at, updated_at FROM wingcfg_wing_categories WHERE id = ? AND is_deleted = FALSE")).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "category_key", "icon", "image_url", "sort_order", "status", "created_at", "updated_at"}).
			AddRow("c1", "bills", "bolt", "https://cdn/bills.png", 1, "ACTIVE", now, now))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT language_code, name, display_name FROM wingcfg_wing_category_values WHERE category_id = ?")).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"language_code", "name", "display_name"}).
			AddRow("en", "Bills", "Pay Bills").
			AddRow("km", "វិក្កយបត្រ", "បង់វិក្កយបត្រ"))

	got, err := repo.Get(context.Background(), "c1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Key != "bills" || got.SortOrder != 1 {
		t.Fatalf("fixed fields = %+v", got)
	}
	want := localized.ValueSet{
		"en": {"name": "Bills", "displayName": "Pay Bills"},
		"km": {"name": "វិក្កយបត្រ", "displayName": "បង់វិក្កយបត្រ"},
	}
	if diff := cmp.Diff(want, got.Values); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func domainWingCategory(id, key string) domain.WingCategory {
	return domain.WingCategory{ID: id, Key: key, Status: "ACTIVE"}
}

func TestWingCategoryRepoUpdateMissing(t *testing.T) {
	repo, mock, done := newWingCategoryRepo(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE wingcfg_wing_categories SET category_key = ?, icon = ?, image_url = ?, sort_order = ?, status = ?, updated_at = ? WHERE id = ? AND is_deleted = FALSE")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	in := domainWingCategory("missing", "bills")
	if _, err := repo.Update(context.Background(), in); err == nil {
		t.Fatal("expected sql.ErrNoRows for unknown id")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
