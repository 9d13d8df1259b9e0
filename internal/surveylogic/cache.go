package surveylogic

import (
	"context"
	"encoding/json"
	"time"

	"survey-backend/internal/inference"
	"survey-backend/internal/shared/telemetry"
)

const logicCacheKey = "survey:logic"

// Cache is the key/value store CachedRepo keeps the encoded rule base in.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CachedRepo reads the rule base through a cache and invalidates it on save.
// Cache failures are logged and fall back to the inner repo.
type CachedRepo struct {
	Inner Repo
	Cache Cache
	TTL   time.Duration
}

func (r *CachedRepo) Load(ctx context.Context) (inference.SurveyLogic, error) {
	data, ok, err := r.Cache.Get(ctx, logicCacheKey)
	switch {
	case err != nil:
		telemetry.Warn("logic.cache_get_failed", map[string]any{"error": err})
	case ok:
		logic, err := decodeLogic(data)
		if err == nil {
			return logic, nil
		}
		telemetry.Warn("logic.cache_decode_failed", map[string]any{"error": err})
	}

	logic, err := r.Inner.Load(ctx)
	if err != nil {
		return inference.SurveyLogic{}, err
	}
	if payload, err := json.Marshal(logic); err == nil {
		if err := r.Cache.Set(ctx, logicCacheKey, payload, r.TTL); err != nil {
			telemetry.Warn("logic.cache_set_failed", map[string]any{"error": err})
		}
	}
	return logic, nil
}

func (r *CachedRepo) Save(ctx context.Context, logic inference.SurveyLogic) error {
	if err := r.Inner.Save(ctx, logic); err != nil {
		return err
	}
	if err := r.Cache.Delete(ctx, logicCacheKey); err != nil {
		telemetry.Warn("logic.cache_invalidate_failed", map[string]any{"error": err})
	}
	return nil
}
