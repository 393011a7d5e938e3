package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"quizdeck/internal/domain"
	"quizdeck/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ResponseCache stores rendered read responses as JSON. Cache failures are
// logged and never fail the request; concurrent misses for one key share a
// single load.
type ResponseCache struct {
	cache domain.Cache
	group singleflight.Group
}

// NewResponseCache wraps cache. A nil cache disables caching but still
// collapses concurrent loads.
func NewResponseCache(cache domain.Cache) *ResponseCache {
	if cache == nil {
		logger.Get().Warn("ResponseCache initialized with nil cache. Reads will go to the store.")
	}
	return &ResponseCache{cache: cache}
}

// Fetch fills dest from the cache entry at key, or from load on a miss.
func (c *ResponseCache) Fetch(ctx context.Context, key string, ttl time.Duration, dest interface{}, load func(ctx context.Context) (interface{}, error)) error {
	appLogger := logger.Get()

	if c.cache != nil {
		cached, err := c.cache.Get(ctx, key)
		switch {
		case err == nil:
			if err := json.Unmarshal([]byte(cached), dest); err == nil {
				appLogger.Debug("Cache hit", zap.String("key", key))
				return nil
			}
			appLogger.Warn("Discarding corrupt cache entry", zap.String("key", key))
			if err := c.cache.Delete(ctx, key); err != nil {
				appLogger.Error("Failed to delete corrupt cache entry", zap.String("key", key), zap.Error(err))
			}
		case errors.Is(err, domain.ErrCacheMiss):
			appLogger.Debug("Cache miss", zap.String("key", key))
		default:
			appLogger.Error("Failed to read from cache", zap.String("key", key), zap.Error(err))
		}
	}

	// Waiters share this load, so it must outlive the caller that started it.
	loadCtx := context.WithoutCancel(ctx)
	data, err, shared := c.group.Do(key, func() (interface{}, error) {
		value, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		payload, err := json.Marshal(value)
		if err != nil {
			return nil, domain.NewInternalError("failed to encode response", err)
		}
		if c.cache != nil {
			if err := c.cache.Set(loadCtx, key, string(payload), ttl); err != nil {
				appLogger.Error("Failed to write to cache", zap.String("key", key), zap.Error(err))
			}
		}
		return payload, nil
	})
	if err != nil {
		return err
	}
	if shared {
		appLogger.Debug("Shared in-flight load", zap.String("key", key))
	}

	if err := json.Unmarshal(data.([]byte), dest); err != nil {
		return domain.NewInternalError("failed to decode response", err)
	}
	return nil
}

// Invalidate drops cached entries. Failures are logged only.
func (c *ResponseCache) Invalidate(ctx context.Context, keys ...string) {
	if c.cache == nil || len(keys) == 0 {
		return
	}
	if err := c.cache.Delete(ctx, keys...); err != nil {
		logger.Get().Error("Failed to invalidate cache", zap.Strings("keys", keys), zap.Error(err))
	}
}
