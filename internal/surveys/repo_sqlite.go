package surveys

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// SQLiteRepo stores surveys in SQLite. JSON columns are TEXT and timestamps
// are unix milliseconds.
type SQLiteRepo struct {
	DB *sql.DB
}

func (r *SQLiteRepo) Append(ctx context.Context, survey Survey) error {
	responses, questions, err := encodeSurvey(survey)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		`INSERT INTO surveys (id, user_id, responses, questions, result, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		survey.ID, survey.UserID, string(responses), string(questions), survey.Result, survey.Timestamp.UTC().UnixMilli(),
	)
	return err
}

func (r *SQLiteRepo) ListByUser(ctx context.Context, userID string) ([]Survey, error) {
	rows, err := r.DB.QueryContext(ctx, `
SELECT id, user_id, responses, questions, result, created_at
FROM surveys
WHERE user_id = ?
ORDER BY created_at DESC, rowid DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Survey{}
	for rows.Next() {
		survey, err := scanSQLiteSurvey(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, survey)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) GetByID(ctx context.Context, userID, surveyID string) (Survey, error) {
	row := r.DB.QueryRowContext(ctx, `
SELECT id, user_id, responses, questions, result, created_at
FROM surveys
WHERE id = ? AND user_id = ?
LIMIT 1`, surveyID, userID)
	survey, err := scanSQLiteSurvey(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Survey{}, ErrNotFound
	}
	return survey, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteSurvey(row rowScanner) (Survey, error) {
	var survey Survey
	var responses, questions string
	var createdAt int64
	if err := row.Scan(&survey.ID, &survey.UserID, &responses, &questions, &survey.Result, &createdAt); err != nil {
		return Survey{}, err
	}
	if err := decodeSurvey(&survey, []byte(responses), []byte(questions)); err != nil {
		return Survey{}, err
	}
	survey.Timestamp = time.UnixMilli(createdAt).UTC()
	return survey, nil
}
