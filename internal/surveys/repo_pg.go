package surveys

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Append(ctx context.Context, survey Survey) error {
	const query = `
INSERT INTO surveys (id, user_id, responses, questions, result, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	responses, questions, err := encodeSurvey(survey)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		survey.ID,
		survey.UserID,
		responses,
		questions,
		survey.Result,
		survey.Timestamp,
	)
	return err
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Survey, error) {
	const query = `
SELECT id, user_id, responses, questions, result, created_at
FROM surveys
WHERE user_id = $1
ORDER BY created_at DESC, id DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Survey{}
	for rows.Next() {
		var survey Survey
		var responses, questions []byte
		if err := rows.Scan(&survey.ID, &survey.UserID, &responses, &questions, &survey.Result, &survey.Timestamp); err != nil {
			return nil, err
		}
		if err := decodeSurvey(&survey, responses, questions); err != nil {
			return nil, err
		}
		survey.Timestamp = survey.Timestamp.UTC()
		out = append(out, survey)
	}
	return out, rows.Err()
}

func (r *PGRepo) GetByID(ctx context.Context, userID, surveyID string) (Survey, error) {
	const query = `
SELECT id, user_id, responses, questions, result, created_at
FROM surveys
WHERE id = $1 AND user_id = $2
LIMIT 1`
	var survey Survey
	var responses, questions []byte
	err := r.DB.QueryRowContext(ctx, query, surveyID, userID).Scan(
		&survey.ID,
		&survey.UserID,
		&responses,
		&questions,
		&survey.Result,
		&survey.Timestamp,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Survey{}, ErrNotFound
		}
		return Survey{}, err
	}
	if err := decodeSurvey(&survey, responses, questions); err != nil {
		return Survey{}, err
	}
	survey.Timestamp = survey.Timestamp.UTC()
	return survey, nil
}

func encodeSurvey(survey Survey) ([]byte, []byte, error) {
	responses, err := json.Marshal(survey.Responses)
	if err != nil {
		return nil, nil, fmt.Errorf("encode responses: %w", err)
	}
	questions, err := json.Marshal(survey.Questions)
	if err != nil {
		return nil, nil, fmt.Errorf("encode questions: %w", err)
	}
	return responses, questions, nil
}

func decodeSurvey(survey *Survey, responses, questions []byte) error {
	if len(responses) > 0 {
		if err := json.Unmarshal(responses, &survey.Responses); err != nil {
			return fmt.Errorf("decode responses: %w", err)
		}
	}
	if len(questions) > 0 {
		if err := json.Unmarshal(questions, &survey.Questions); err != nil {
			return fmt.Errorf("decode questions: %w", err)
		}
	}
	return nil
}
