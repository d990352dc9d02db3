package cache

import (
	"context"
	"listing-search-service/internal/core/port"
	"sync"
	"time"
)

// MemoryStore - хранилище кэша в памяти процесса. Срок жизни записи проверяет ReferenceCache,
// здесь ttl нужен только чтобы не держать записи бесконечно.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	entry     port.CacheEntry
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (*port.CacheEntry, error) {
	s.mu.RLock()
	item, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if !item.expiresAt.IsZero() && !s.now().Before(item.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, nil
	}

	entry := item.entry
	return &entry, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, entry port.CacheEntry, ttl time.Duration) error {
	item := memoryEntry{entry: entry}
	if ttl > 0 {
		item.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[key] = item
	s.mu.Unlock()
	return nil
}
