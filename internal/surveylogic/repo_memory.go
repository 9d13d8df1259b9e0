package surveylogic

import (
	"context"
	"sync"

	"survey-backend/internal/inference"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	logic inference.SurveyLogic
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{logic: inference.SurveyLogic{}.Clone()}
}

func (r *MemoryRepo) Load(ctx context.Context) (inference.SurveyLogic, error) {
	if err := ctx.Err(); err != nil {
		return inference.SurveyLogic{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.logic.Clone(), nil
}

func (r *MemoryRepo) Save(ctx context.Context, logic inference.SurveyLogic) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logic = logic.Clone()
	return nil
}
