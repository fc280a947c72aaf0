package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ignite/shop/internal/revalidate"
	"github.com/redis/go-redis/v9"
)

// DefaultRetention is how long a snapshot is kept in Redis after it was
// written. Snapshots older than the revalidation interval are still served
// while a refresh runs, so retention is much longer than the interval.
const DefaultRetention = 7 * 24 * time.Hour

// RedisSnapshotStore keeps resolved snapshots in Redis as JSON
type RedisSnapshotStore[T any] struct {
	client    *redis.Client
	retention time.Duration
}

// NewRedisSnapshotStore creates a snapshot store backed by client
func NewRedisSnapshotStore[T any](client *redis.Client, retention time.Duration) *RedisSnapshotStore[T] {
	if retention <= 0 {
		retention = DefaultRetention
	}
	return &RedisSnapshotStore[T]{
		client:    client,
		retention: retention,
	}
}

func (s *RedisSnapshotStore[T]) Load(ctx context.Context, key string) (*revalidate.Snapshot[T], error) {
	data, err := s.client.Get(ctx, cacheKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, revalidate.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var snapshot revalidate.Snapshot[T]
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot failed: %w", err)
	}

	return &snapshot, nil
}

func (s *RedisSnapshotStore[T]) Save(ctx context.Context, key string, snapshot *revalidate.Snapshot[T]) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot failed: %w", err)
	}

	if err := s.client.Set(ctx, cacheKey(key), data, s.retention).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *RedisSnapshotStore[T]) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, cacheKey(key)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func cacheKey(key string) string {
	return fmt.Sprintf("page:%s", key)
}
