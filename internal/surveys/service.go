package surveys

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"survey-backend/internal/inference"
	"survey-backend/internal/shared/metrics"
	"survey-backend/internal/shared/telemetry"
)

// LogicSource supplies the rule base a submission is evaluated against.
type LogicSource interface {
	Get(ctx context.Context) (inference.SurveyLogic, error)
}

// Service runs the submission workflow and serves history.
type Service struct {
	Repo  Repo
	Logic LogicSource
	Now   func() time.Time
}

func NewService(repo Repo, logic LogicSource) *Service {
	return &Service{Repo: repo, Logic: logic}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Submit checks that every premise is answered, evaluates the responses and
// stores the record with a snapshot of the questions as they read now.
func (s *Service) Submit(ctx context.Context, userID string, responses inference.Responses) (Survey, error) {
	if s == nil || s.Repo == nil || s.Logic == nil {
		return Survey{}, errors.New("surveys service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return Survey{}, errors.New("user id is required")
	}

	logic, err := s.Logic.Get(ctx)
	if err != nil {
		metrics.IncSubmission(metrics.StatusError)
		return Survey{}, err
	}
	if len(logic.Premises) == 0 {
		metrics.IncSubmission(metrics.StatusRejected)
		return Survey{}, ErrNoQuestions
	}
	var missing []string
	for _, p := range logic.Premises {
		if responses[p.ID].Blank() {
			missing = append(missing, p.ID)
		}
	}
	if len(missing) > 0 {
		metrics.IncSubmission(metrics.StatusRejected)
		return Survey{}, &IncompleteError{Missing: missing}
	}

	outcome := inference.Run(responses, logic)
	metrics.ObserveEvaluation(len(outcome.Matches))

	questions := make([]QuestionAnswer, 0, len(logic.Premises))
	for _, p := range logic.Premises {
		questions = append(questions, QuestionAnswer{
			ID:       p.ID,
			Question: p.Question,
			Answer:   responses[p.ID],
		})
	}
	stored := make(inference.Responses, len(responses))
	for k, v := range responses {
		stored[k] = v
	}

	survey := Survey{
		ID:        "survey-" + uuid.NewString(),
		UserID:    userID,
		Responses: stored,
		Questions: questions,
		Result:    outcome.Result,
		Timestamp: s.now(),
	}
	if err := s.Repo.Append(ctx, survey); err != nil {
		metrics.IncSubmission(metrics.StatusError)
		return Survey{}, fmt.Errorf("store survey: %w", err)
	}

	metrics.IncSubmission(metrics.StatusOK)
	telemetry.Info("survey.submitted", map[string]any{
		"survey_id": survey.ID,
		"user_id":   userID,
		"matches":   len(outcome.Matches),
		"result":    survey.Result,
	})
	return survey, nil
}

// History returns the user's surveys newest first.
func (s *Service) History(ctx context.Context, userID string) ([]Survey, error) {
	if s == nil || s.Repo == nil {
		return nil, errors.New("surveys service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return nil, errors.New("user id is required")
	}
	return s.Repo.ListByUser(ctx, userID)
}

// Get returns one of the user's own surveys.
func (s *Service) Get(ctx context.Context, userID, surveyID string) (Survey, error) {
	if s == nil || s.Repo == nil {
		return Survey{}, errors.New("surveys service not configured")
	}
	if strings.TrimSpace(surveyID) == "" {
		return Survey{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID, surveyID)
}

// Summary counts the user's surveys and returns the newest one.
func (s *Service) Summary(ctx context.Context, userID string) (Summary, error) {
	history, err := s.History(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	summary := Summary{Total: len(history)}
	if len(history) > 0 {
		latest := history[0]
		summary.Latest = &latest
	}
	return summary, nil
}
