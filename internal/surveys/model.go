package surveys

import (
	"time"

	"survey-backend/internal/inference"
)

// QuestionAnswer snapshots a premise's question text next to the answer
// given, so history stays readable after the premise is edited or removed.
type QuestionAnswer struct {
	ID       string          `json:"id"`
	Question string          `json:"question"`
	Answer   inference.Value `json:"answer"`
}

// Survey is an immutable submission record.
type Survey struct {
	ID        string              `json:"id"`
	UserID    string              `json:"userId"`
	Responses inference.Responses `json:"responses"`
	Questions []QuestionAnswer    `json:"questions"`
	Result    string              `json:"result"`
	Timestamp time.Time           `json:"timestamp"`
}

// Summary is the per-user overview shown above the history list.
type Summary struct {
	Total  int     `json:"total"`
	Latest *Survey `json:"latest,omitempty"`
}
