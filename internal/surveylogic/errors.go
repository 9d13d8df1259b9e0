package surveylogic

import "errors"

var (
	// ErrNotFound indicates a premise, rule or subgoal id did not resolve.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates validation or bad input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict indicates an id already in use.
	ErrConflict = errors.New("conflict")
)
