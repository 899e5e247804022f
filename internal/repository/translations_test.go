package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"github.com/wingbank/appconfig/internal/domain"
	"github.com/wingbank/appconfig/pkg/localized"
)

func newTranslationRepo(t *testing.T) (*TranslationRepo, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	repo := &TranslationRepo{DB: db, Driver: "mysql", TablePrefix: "wingcfg_"}
	return repo, mock, func() { db.Close() }
}

func TestTranslationRepoGet(t *testing.T) {
	repo, mock, done := newTranslationRepo(t)
	defer done()

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, translation_key, module, version, platform, created_at, updated_at FROM wingcfg_translations WHERE id = ? AND is_deleted = FALSE")).
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "translation_key", "module", "version", "platform", "created_at", "updated_at"}).
			AddRow("t1", "login.title", "auth", "1.0", "ALL", now, now))
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT language_code, value FROM wingcfg_translation_values WHERE translation_id = ?")).
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows([]string{"language_code", "value"}).
			AddRow("en", "Login").
			AddRow("km", "ចូល"))

	got, err := repo.Get(context.Background(), "t1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	want := localized.ValueSet{
		"en": {"Value": "Login"},
		"km": {"Value": "ចូល"},
	}
	if diff := cmp.Diff(want, got.Values); diff != "" {
		t.Errorf("values mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTranslationRepoUpdateMergesValues(t *testing.T) {
	repo, mock, done := newTranslationRepo(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE wingcfg_translations SET translation_key = ?, module = ?, version = ?, platform = ?, updated_at = ? WHERE id = ? AND is_deleted = FALSE")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// km exists already: the UPDATE hits and no INSERT is issued.
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE wingcfg_translation_values SET value = ? WHERE translation_id = ? AND language_code = ?")).
		WithArgs("ចូលគណនី", "t1", "km").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	in := domainTranslation("t1", "login.title")
	in.Values = localized.ValueSet{"km": {"Value": "ចូលគណនី"}}
	if _, err := repo.Update(context.Background(), in); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTranslationRepoUpdateInsertsNewLanguage(t *testing.T) {
	repo, mock, done := newTranslationRepo(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE wingcfg_translations SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// No row for th yet: UPDATE affects nothing, INSERT follows.
	mock.ExpectExec(regexp.QuoteMeta(
		"UPDATE wingcfg_translation_values SET value = ? WHERE translation_id = ? AND language_code = ?")).
		WithArgs("เข้าสู่ระบบ", "t1", "th").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(
		"INSERT INTO wingcfg_translation_values (translation_id, language_code, value) VALUES (?, ?, ?)")).
		WithArgs("t1", "th", "เข้าสู่ระบบ").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	in := domainTranslation("t1", "login.title")
	in.Values = localized.ValueSet{"th": {"Value": "เข้าสู่ระบบ"}}
	if _, err := repo.Update(context.Background(), in); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTranslationRepoUpdateMissing(t *testing.T) {
	repo, mock, done := newTranslationRepo(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE wingcfg_translations SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), domainTranslation("missing", "x"))
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("want sql.ErrNoRows, got %v", err)
	}
}

func TestTranslationRepoForMobileFallback(t *testing.T) {
	repo, mock, done := newTranslationRepo(t)
	defer done()

	mock.ExpectQuery("SELECT t.translation_key, v.language_code, v.value FROM wingcfg_translations t").
		WithArgs("IOS", "km").
		WillReturnRows(sqlmock.NewRows([]string{"translation_key", "language_code", "value"}).
			AddRow("login.title", "en", "Login").
			AddRow("login.title", "km", "ចូល").
			AddRow("home.greeting", "en", "Welcome"))

	got, err := repo.ForMobile(context.Background(), "km", "IOS")
	if err != nil {
		t.Fatalf("for mobile: %v", err)
	}
	want := map[string]string{
		"login.title":   "ចូល",
		"home.greeting": "Welcome",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mobile map mismatch (-want +got):\n%s", diff)
	}
}

func TestAppLanguageRepoLoad(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := &AppLanguageRepo{DB: db, Driver: "mysql", TablePrefix: "wingcfg_"}

	now := time.Now()
	mock.ExpectQuery("SELECT id, code, name, native_name, status, display_order, created_at, updated_at FROM wingcfg_app_languages").
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name", "native_name", "status", "display_order", "created_at", "updated_at"}).
			AddRow("l1", "en", "English", "English", "ACTIVE", 1, now, now).
			AddRow("l2", "km", "Khmer", "ខ្មែរ", "ACTIVE", 2, now, now))

	langs, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []localized.Language{{Code: "en", Label: "English"}, {Code: "km", Label: "Khmer"}}
	if diff := cmp.Diff(want, langs); diff != "" {
		t.Errorf("languages mismatch (-want +got):\n%s", diff)
	}
}

func domainTranslation(id, key string) domain.Translation {
	return domain.Translation{ID: id, Key: key, Module: "auth", Version: "1.0", Platform: "ALL"}
}

func TestBindPostgres(t *testing.T) {
	got := bind("postgres", "SELECT 1 FROM t WHERE a = ? AND b = ?")
	want := "SELECT 1 FROM t WHERE a = $1 AND b = $2"
	if got != want {
		t.Errorf("bind = %q, want %q", got, want)
	}
	if q := "SELECT 1 WHERE a = ?"; bind("mysql", q) != q {
		t.Errorf("mysql bind should be a no-op")
	}
}
