package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
)

func TestApiMessageRepoForMobileFallsBackToEnglish(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := &ApiMessageRepo{DB: db, Driver: "mysql", TablePrefix: "wingcfg_"}

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT m.error_code, v.language_code, v.message FROM wingcfg_api_messages m" +
			" JOIN wingcfg_api_message_values v ON v.message_id = m.id" +
			" WHERE m.is_deleted = FALSE AND v.language_code IN (?, 'en') ORDER BY m.error_code")).
		WithArgs("km").
		WillReturnRows(sqlmock.NewRows([]string{"error_code", "language_code", "message"}).
			AddRow("E001", "en", "Invalid account").
			AddRow("E001", "km", "គណនីមិនត្រឹមត្រូវ").
			AddRow("E002", "en", "Insufficient funds"))

	got, err := repo.ForMobile(context.Background(), "km")
	if err != nil {
		t.Fatalf("for mobile: %v", err)
	}
	// E002 has no Khmer value, so the English one wins.
	want := map[string]string{
		"E001": "គណនីមិនត្រឹមត្រូវ",
		"E002": "Insufficient funds",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
