package surveys

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound indicates the survey does not exist for this user.
	ErrNotFound = errors.New("survey not found")

	// ErrNoQuestions indicates the rule base has no premises to answer yet.
	ErrNoQuestions = errors.New("no questions configured")

	// ErrIncomplete indicates at least one premise was left unanswered.
	ErrIncomplete = errors.New("incomplete answers")
)

// IncompleteError lists the premises without an answer.
type IncompleteError struct {
	Missing []string
}

func (e *IncompleteError) Error() string {
	return ErrIncomplete.Error() + ": " + strings.Join(e.Missing, ", ")
}

func (e *IncompleteError) Unwrap() error { return ErrIncomplete }
