// Package revalidate implements render-then-cache resolution with a
// revalidation interval: the first request for a key resolves it in the
// background, later requests within the interval are served from memory, and
// requests after the interval get the cached value while a single background
// refresh replaces it.
package revalidate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// FetchFunc resolves the value for a key
type FetchFunc[T any] func(ctx context.Context, key string) (T, error)

// Status describes what a Lookup found
type Status int

const (
	StatusPending Status = iota
	StatusFresh
	StatusStale
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusFresh:
		return "fresh"
	case StatusStale:
		return "stale"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is the outcome of a Lookup
type Result[T any] struct {
	Status     Status
	Value      T
	ResolvedAt time.Time
	Err        error
}

// Options configures a Resolver
type Options struct {
	// TTL is the revalidation interval
	TTL time.Duration
	// FailureTTL is how long a failed first resolution is reported before
	// the key is resolved again
	FailureTTL time.Duration
	// FetchTimeout bounds background resolutions
	FetchTimeout time.Duration
	// Now is the clock; defaults to time.Now
	Now func() time.Time
}

type entryState int

const (
	statePending entryState = iota
	stateReady
	stateFailed
)

type entry[T any] struct {
	state      entryState
	value      T
	resolvedAt time.Time
	err        error
	failedAt   time.Time
	refreshing bool
	done       chan struct{}
}

// Resolver memoizes FetchFunc results per key
type Resolver[T any] struct {
	name  string
	fetch FetchFunc[T]
	store Store[T]
	opts  Options

	mu      sync.Mutex
	entries map[string]*entry[T]
	// gens counts invalidations per key; fetches are shared only within
	// one generation
	gens  map[string]uint64
	group singleflight.Group
	wg    sync.WaitGroup
}

// NewResolver creates a resolver. name namespaces the keys written to store,
// which may be nil to keep snapshots in memory only.
func NewResolver[T any](name string, fetch FetchFunc[T], store Store[T], opts Options) *Resolver[T] {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 15 * time.Second
	}

	return &Resolver[T]{
		name:    name,
		fetch:   fetch,
		store:   store,
		opts:    opts,
		entries: make(map[string]*entry[T]),
		gens:    make(map[string]uint64),
	}
}

// TTL returns the revalidation interval
func (r *Resolver[T]) TTL() time.Duration {
	return r.opts.TTL
}

// Lookup reports the current state of key without waiting on the fetch.
// Unknown keys start resolving in the background; stale keys are returned
// as-is and refreshed in the background.
func (r *Resolver[T]) Lookup(ctx context.Context, key string) Result[T] {
	res, _ := r.lookup(ctx, key)
	return res
}

// Resolve waits until key is resolved or has failed
func (r *Resolver[T]) Resolve(ctx context.Context, key string) (T, error) {
	var zero T

	res, e := r.lookup(ctx, key)
	switch res.Status {
	case StatusFresh, StatusStale:
		return res.Value, nil
	case StatusFailed:
		return zero, res.Err
	}

	select {
	case <-e.done:
	case <-ctx.Done():
		return zero, ctx.Err()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e.state == stateFailed {
		return zero, e.err
	}
	return e.value, nil
}

// Prime resolves key synchronously and caches the result. A failed Prime
// leaves any cached value untouched.
func (r *Resolver[T]) Prime(ctx context.Context, key string) (T, error) {
	v, err := r.fetchShared(ctx, key)
	if err != nil {
		var zero T
		return zero, err
	}

	now := r.opts.Now()
	r.mu.Lock()
	e, ok := r.entries[key]
	if !ok || e.state != stateReady {
		// a pending entry is settled by its own goroutine; replace it
		e = &entry[T]{done: make(chan struct{})}
		close(e.done)
		r.entries[key] = e
	}
	e.state = stateReady
	e.value = v
	e.resolvedAt = now
	r.mu.Unlock()

	r.save(ctx, key, v, now)
	return v, nil
}

// Invalidate forgets key in memory and in the store, so the next request
// resolves it from scratch. A fetch already in flight for key is not shared
// with later requests and never settles the entry that replaces it.
func (r *Resolver[T]) Invalidate(ctx context.Context, key string) error {
	r.mu.Lock()
	delete(r.entries, key)
	gen := r.gens[key]
	r.gens[key] = gen + 1
	r.mu.Unlock()
	r.group.Forget(flightKey(key, gen))

	if r.store == nil {
		return nil
	}
	if err := r.store.Delete(ctx, r.storeKey(key)); err != nil && !errors.Is(err, ErrSnapshotNotFound) {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	return nil
}

// Wait blocks until all background resolutions have finished
func (r *Resolver[T]) Wait() {
	r.wg.Wait()
}

func (r *Resolver[T]) lookup(ctx context.Context, key string) (Result[T], *entry[T]) {
	now := r.opts.Now()

	r.mu.Lock()
	e, ok := r.entries[key]
	if ok && e.state == stateFailed && now.Sub(e.failedAt) >= r.opts.FailureTTL {
		delete(r.entries, key)
		ok = false
	}

	if !ok {
		r.sweepFailuresLocked(now)
		e = &entry[T]{state: statePending, done: make(chan struct{})}
		r.entries[key] = e
		r.mu.Unlock()
		return r.startEntry(ctx, key, e), e
	}

	res := r.resultLocked(key, e, now)
	r.mu.Unlock()
	return res, e
}

// sweepFailuresLocked drops failed entries whose failure TTL has passed, so
// lookups of unknown keys do not accumulate. Must be called with r.mu held.
func (r *Resolver[T]) sweepFailuresLocked(now time.Time) {
	for key, e := range r.entries {
		if e.state == stateFailed && now.Sub(e.failedAt) >= r.opts.FailureTTL {
			delete(r.entries, key)
		}
	}
}

// resultLocked must be called with r.mu held
func (r *Resolver[T]) resultLocked(key string, e *entry[T], now time.Time) Result[T] {
	switch e.state {
	case statePending:
		return Result[T]{Status: StatusPending}
	case stateFailed:
		return Result[T]{Status: StatusFailed, Err: e.err}
	}

	if now.Sub(e.resolvedAt) < r.opts.TTL {
		return Result[T]{Status: StatusFresh, Value: e.value, ResolvedAt: e.resolvedAt}
	}

	if !e.refreshing {
		e.refreshing = true
		r.refresh(key, e)
	}
	return Result[T]{Status: StatusStale, Value: e.value, ResolvedAt: e.resolvedAt}
}

// startEntry settles a new entry from the store, or kicks off the first
// background resolution
func (r *Resolver[T]) startEntry(ctx context.Context, key string, e *entry[T]) Result[T] {
	if snapshot := r.load(ctx, key); snapshot != nil {
		r.mu.Lock()
		e.state = stateReady
		e.value = snapshot.Value
		e.resolvedAt = snapshot.ResolvedAt
		close(e.done)
		res := r.resultLocked(key, e, r.opts.Now())
		r.mu.Unlock()
		return res
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		bgCtx, cancel := context.WithTimeout(context.Background(), r.opts.FetchTimeout)
		defer cancel()

		v, err := r.fetchShared(bgCtx, key)
		now := r.opts.Now()

		r.mu.Lock()
		if err != nil {
			e.state = stateFailed
			e.err = err
			e.failedAt = now
		} else {
			e.state = stateReady
			e.value = v
			e.resolvedAt = now
		}
		close(e.done)
		current := r.entries[key] == e
		r.mu.Unlock()

		if err != nil {
			log.Printf("Failed to resolve %s %q: %v", r.name, key, err)
			return
		}
		if current {
			r.save(bgCtx, key, v, now)
		}
	}()

	return Result[T]{Status: StatusPending}
}

// refresh re-resolves a stale entry; must be called with r.mu held
func (r *Resolver[T]) refresh(key string, e *entry[T]) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), r.opts.FetchTimeout)
		defer cancel()

		v, err := r.fetchShared(ctx, key)
		now := r.opts.Now()

		r.mu.Lock()
		e.refreshing = false
		if err == nil {
			e.value = v
			e.resolvedAt = now
		}
		current := r.entries[key] == e
		r.mu.Unlock()

		if err != nil {
			log.Printf("Failed to revalidate %s %q, keeping previous result: %v", r.name, key, err)
			return
		}
		if current {
			r.save(ctx, key, v, now)
		}
	}()
}

func (r *Resolver[T]) fetchShared(ctx context.Context, key string) (T, error) {
	r.mu.Lock()
	gen := r.gens[key]
	r.mu.Unlock()

	v, err, _ := r.group.Do(flightKey(key, gen), func() (interface{}, error) {
		return r.fetch(ctx, key)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func (r *Resolver[T]) load(ctx context.Context, key string) *Snapshot[T] {
	if r.store == nil {
		return nil
	}

	snapshot, err := r.store.Load(ctx, r.storeKey(key))
	if err != nil {
		if !errors.Is(err, ErrSnapshotNotFound) {
			log.Printf("Failed to load snapshot for %s %q: %v", r.name, key, err)
		}
		return nil
	}
	return snapshot
}

func (r *Resolver[T]) save(ctx context.Context, key string, v T, resolvedAt time.Time) {
	if r.store == nil {
		return
	}

	snapshot := &Snapshot[T]{Value: v, ResolvedAt: resolvedAt}
	if err := r.store.Save(ctx, r.storeKey(key), snapshot); err != nil {
		log.Printf("Failed to save snapshot for %s %q: %v", r.name, key, err)
	}
}

func flightKey(key string, gen uint64) string {
	return key + "#" + strconv.FormatUint(gen, 10)
}

func (r *Resolver[T]) storeKey(key string) string {
	return r.name + ":" + key
}
