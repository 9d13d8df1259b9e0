package surveylogic

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"survey-backend/internal/inference"
)

// SQLiteRepo keeps the rule base in a local SQLite file.
type SQLiteRepo struct {
	DB *sql.DB
}

func (r *SQLiteRepo) Load(ctx context.Context) (inference.SurveyLogic, error) {
	var payload string
	err := r.DB.QueryRowContext(ctx, `SELECT payload FROM survey_logic WHERE id = ?`, documentID).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return inference.SurveyLogic{}.Clone(), nil
		}
		return inference.SurveyLogic{}, err
	}
	return decodeLogic([]byte(payload))
}

func (r *SQLiteRepo) Save(ctx context.Context, logic inference.SurveyLogic) error {
	const query = `
INSERT INTO survey_logic (id, payload, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  payload = excluded.payload,
  updated_at = excluded.updated_at`
	payload, err := json.Marshal(logic.Clone())
	if err != nil {
		return fmt.Errorf("encode survey logic: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, query, documentID, string(payload), time.Now().UTC().UnixMilli())
	return err
}
