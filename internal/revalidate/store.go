package revalidate

import (
	"context"
	"errors"
	"time"
)

// ErrSnapshotNotFound is returned by a Store when no snapshot exists for a key
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Snapshot is a resolved value together with the time it was resolved.
// ResolvedAt is kept as-is across restarts so staleness survives them.
type Snapshot[T any] struct {
	Value      T         `json:"value"`
	ResolvedAt time.Time `json:"resolvedAt"`
}

// Store persists snapshots outside the process
type Store[T any] interface {
	Load(ctx context.Context, key string) (*Snapshot[T], error)
	Save(ctx context.Context, key string, snapshot *Snapshot[T]) error
	Delete(ctx context.Context, key string) error
}
