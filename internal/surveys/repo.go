package surveys

import "context"

// Repo is an append-only store of submissions.
type Repo interface {
	Append(ctx context.Context, survey Survey) error
	// ListByUser returns the user's surveys newest first.
	ListByUser(ctx context.Context, userID string) ([]Survey, error)
	GetByID(ctx context.Context, userID, surveyID string) (Survey, error)
}
