package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"listing-search-service/internal/core/port"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "listing-search:"

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisStore хранит кэш справочных данных в Redis, чтобы несколько реплик делили записи
type RedisStore struct {
	client *redis.Client
}

type redisEntry struct {
	Value     []byte    `json:"value"`
	FetchedAt time.Time `json:"fetched_at"`
}

func NewRedisStore(cfg RedisConfig) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	return &RedisStore{client: client}
}

// Ping проверяет соединение с Redis
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (*port.CacheEntry, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}

	var stored redisEntry
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("redis entry %s is corrupted: %w", key, err)
	}

	return &port.CacheEntry{Value: stored.Value, FetchedAt: stored.FetchedAt}, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, entry port.CacheEntry, ttl time.Duration) error {
	raw, err := json.Marshal(redisEntry{Value: entry.Value, FetchedAt: entry.FetchedAt})
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
