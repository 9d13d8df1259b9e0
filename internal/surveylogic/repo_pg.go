package surveylogic

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"survey-backend/internal/inference"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Load(ctx context.Context) (inference.SurveyLogic, error) {
	const query = `
SELECT payload
FROM survey_logic
WHERE id = $1
LIMIT 1`
	var payload []byte
	err := r.DB.QueryRowContext(ctx, query, documentID).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return inference.SurveyLogic{}.Clone(), nil
		}
		return inference.SurveyLogic{}, err
	}
	return decodeLogic(payload)
}

func (r *PGRepo) Save(ctx context.Context, logic inference.SurveyLogic) error {
	const query = `
INSERT INTO survey_logic (id, payload, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (id) DO UPDATE SET
  payload = EXCLUDED.payload,
  updated_at = now()`
	payload, err := json.Marshal(logic.Clone())
	if err != nil {
		return fmt.Errorf("encode survey logic: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, query, documentID, payload)
	return err
}

func decodeLogic(payload []byte) (inference.SurveyLogic, error) {
	var logic inference.SurveyLogic
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &logic); err != nil {
			return inference.SurveyLogic{}, fmt.Errorf("decode survey logic: %w", err)
		}
	}
	return logic.Clone(), nil
}
