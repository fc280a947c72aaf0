package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ignite/shop/internal/database"
	"github.com/ignite/shop/internal/revalidate"
)

// SnapshotRepository handles database operations for page snapshots
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new snapshot repository
func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{
		db: database.DB,
	}
}

// NewSnapshotRepositoryWithDB creates a new snapshot repository with a specific database connection
func NewSnapshotRepositoryWithDB(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{
		db: db,
	}
}

// SnapshotRow is one stored page snapshot
type SnapshotRow struct {
	Key        string
	Payload    []byte
	ResolvedAt time.Time
	UpdatedAt  time.Time
}

// Upsert stores the payload for key, replacing any previous snapshot
func (r *SnapshotRepository) Upsert(ctx context.Context, key string, payload []byte, resolvedAt time.Time) error {
	query := `
		INSERT INTO page_snapshots (key, payload, resolved_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE
		SET payload = EXCLUDED.payload,
		    resolved_at = EXCLUDED.resolved_at,
		    updated_at = EXCLUDED.updated_at
	`

	if _, err := r.db.ExecContext(ctx, query, key, payload, resolvedAt, time.Now()); err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}

	return nil
}

// Get retrieves the snapshot stored for key
func (r *SnapshotRepository) Get(ctx context.Context, key string) (*SnapshotRow, error) {
	query := `
		SELECT key, payload, resolved_at, updated_at
		FROM page_snapshots
		WHERE key = $1
	`

	row := &SnapshotRow{}
	err := r.db.QueryRowContext(ctx, query, key).Scan(
		&row.Key,
		&row.Payload,
		&row.ResolvedAt,
		&row.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, revalidate.ErrSnapshotNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	return row, nil
}

// Delete removes the snapshot stored for key
func (r *SnapshotRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM page_snapshots WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// SnapshotStore adapts a SnapshotRepository to revalidate.Store, encoding
// values as JSON
type SnapshotStore[T any] struct {
	repo *SnapshotRepository
}

// NewSnapshotStore creates a typed snapshot store on top of repo
func NewSnapshotStore[T any](repo *SnapshotRepository) *SnapshotStore[T] {
	return &SnapshotStore[T]{repo: repo}
}

func (s *SnapshotStore[T]) Load(ctx context.Context, key string) (*revalidate.Snapshot[T], error) {
	row, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var value T
	if err := json.Unmarshal(row.Payload, &value); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", key, err)
	}

	return &revalidate.Snapshot[T]{Value: value, ResolvedAt: row.ResolvedAt}, nil
}

func (s *SnapshotStore[T]) Save(ctx context.Context, key string, snapshot *revalidate.Snapshot[T]) error {
	payload, err := json.Marshal(snapshot.Value)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot %s: %w", key, err)
	}
	return s.repo.Upsert(ctx, key, payload, snapshot.ResolvedAt)
}

func (s *SnapshotStore[T]) Delete(ctx context.Context, key string) error {
	return s.repo.Delete(ctx, key)
}
