package surveylogic

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoLoadMissingRowIsEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectQuery("SELECT payload\\s+FROM survey_logic").
		WithArgs(documentID).
		WillReturnError(sql.ErrNoRows)

	logic, err := (&PGRepo{DB: db}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if logic.Premises == nil || len(logic.Premises) != 0 || len(logic.Rules) != 0 {
		t.Fatalf("expected empty logic, got %+v", logic)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoLoadDecodesPayload(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	payload, err := json.Marshal(sampleLogic())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	mock.ExpectQuery("SELECT payload\\s+FROM survey_logic").
		WithArgs(documentID).
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(payload))

	logic, err := (&PGRepo{DB: db}).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(logic.Rules) != 3 || logic.Rules[1].Conditions[0].Operator != "<" {
		t.Fatalf("unexpected decoded logic: %+v", logic.Rules)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoSaveUpserts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectExec("INSERT INTO survey_logic .* ON CONFLICT \\(id\\) DO UPDATE").
		WithArgs(documentID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := (&PGRepo{DB: db}).Save(context.Background(), sampleLogic()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
