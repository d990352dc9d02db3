package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"listing-search-service/internal/contextkeys"
	"listing-search-service/internal/core/port"
	"time"

	"golang.org/x/sync/singleflight"
)

// ReferenceCache кэширует справочные данные (stats, barrios, fuentes).
// Срок жизни записи проверяется лениво при обращении, явной инвалидации нет.
type ReferenceCache struct {
	store   port.CacheStorePort
	ttl     time.Duration
	metrics port.SearchMetricsPort
	group   singleflight.Group
	now     func() time.Time
}

func NewReferenceCache(store port.CacheStorePort, ttl time.Duration, metrics port.SearchMetricsPort) *ReferenceCache {
	if metrics == nil {
		metrics = port.NopSearchMetrics{}
	}
	return &ReferenceCache{
		store:   store,
		ttl:     ttl,
		metrics: metrics,
		now:     time.Now,
	}
}

// GetOrFetch возвращает свежее значение из кэша или вызывает fetch.
// Одновременные промахи по одному ключу разделяют один вызов fetch.
// Ошибка fetch не кэшируется.
func GetOrFetch[T any](ctx context.Context, c *ReferenceCache, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	data, err := c.getOrFetch(ctx, key, func(ctx context.Context) ([]byte, error) {
		value, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(value)
	})
	if err != nil {
		return zero, err
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return zero, fmt.Errorf("failed to decode cached value %q: %w", key, err)
	}
	return value, nil
}

func (c *ReferenceCache) getOrFetch(ctx context.Context, key string, fetch func(ctx context.Context) ([]byte, error)) ([]byte, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "ReferenceCache",
		"key":       key,
	})

	if data, ok := c.lookup(ctx, logger, key); ok {
		c.metrics.ReferenceCacheLookup(key, true)
		logger.Debug("Reference cache hit", nil)
		return data, nil
	}
	c.metrics.ReferenceCacheLookup(key, false)

	result, err, shared := c.group.Do(key, func() (interface{}, error) {
		// пока мы ждали, другой вызов мог уже заполнить кэш
		if data, ok := c.lookup(ctx, logger, key); ok {
			return data, nil
		}

		data, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		entry := port.CacheEntry{Value: data, FetchedAt: c.now()}
		if err := c.store.Set(ctx, key, entry, c.ttl); err != nil {
			logger.Warn("Failed to store reference data in cache", port.Fields{"error": err.Error()})
		}
		return data, nil
	})
	if err != nil {
		logger.Error("Failed to fetch reference data", err, nil)
		return nil, err
	}

	logger.Debug("Reference data fetched", port.Fields{"shared": shared})
	return result.([]byte), nil
}

func (c *ReferenceCache) lookup(ctx context.Context, logger port.LoggerPort, key string) ([]byte, bool) {
	entry, err := c.store.Get(ctx, key)
	if err != nil {
		logger.Warn("Failed to read reference cache, falling back to API", port.Fields{"error": err.Error()})
		return nil, false
	}
	if entry == nil || c.now().Sub(entry.FetchedAt) >= c.ttl {
		return nil, false
	}
	return entry.Value, true
}
