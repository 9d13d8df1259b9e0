package surveylogic

import (
	"context"

	"survey-backend/internal/inference"
)

// Repo stores the rule base as a single document. Load on an empty store
// returns an empty rule base; Save replaces the stored one.
type Repo interface {
	Load(ctx context.Context) (inference.SurveyLogic, error)
	Save(ctx context.Context, logic inference.SurveyLogic) error
}

// documentID keys the single rule base row in SQL stores.
const documentID = "default"
