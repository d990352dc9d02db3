package port

import (
	"context"
	"time"
)

// CacheEntry - сохраненное значение и момент его получения
type CacheEntry struct {
	Value     []byte
	FetchedAt time.Time
}

// CacheStorePort - хранилище для кэша справочных данных.
// Get возвращает (nil, nil), если записи нет.
type CacheStorePort interface {
	Get(ctx context.Context, key string) (*CacheEntry, error)
	Set(ctx context.Context, key string, entry CacheEntry, ttl time.Duration) error
}
