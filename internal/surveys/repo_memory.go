package surveys

import (
	"context"
	"sort"
	"sync"
)

type MemoryRepo struct {
	mu     sync.RWMutex
	byUser map[string][]Survey
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byUser: make(map[string][]Survey)}
}

func (r *MemoryRepo) Append(ctx context.Context, survey Survey) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[survey.UserID] = append(r.byUser[survey.UserID], survey)
	return nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Survey, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	stored := r.byUser[userID]
	out := make([]Survey, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		out = append(out, stored[i])
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, surveyID string) (Survey, error) {
	if err := ctx.Err(); err != nil {
		return Survey{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.byUser[userID] {
		if s.ID == surveyID {
			return s, nil
		}
	}
	return Survey{}, ErrNotFound
}
