package ratelimiter

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     []byte
	expiresAt time.Time // zero means no expiration
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryStore implements Store in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry

	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	stopOnce        sync.Once
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets the cleanup interval for removing expired entries.
// Set to 0 to disable automatic cleanup.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		ms.cleanupInterval = interval
	}
}

// NewMemoryStore creates a new in-memory store with optional cleanup.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{
		entries:         make(map[string]entry),
		cleanupInterval: 5 * time.Minute,
		stopCleanup:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(ms)
	}

	if ms.cleanupInterval > 0 {
		go ms.cleanup()
	}

	return ms
}

func (ms *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ms.mu.RLock()
	e, ok := ms.entries[key]
	ms.mu.RUnlock()

	if !ok || e.expired(time.Now()) {
		return nil, nil
	}

	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, nil
}

func (ms *MemoryStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	e := entry{value: make([]byte, len(value))}
	copy(e.value, value)
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}

	ms.mu.Lock()
	ms.entries[key] = e
	ms.mu.Unlock()
	return nil
}

func (ms *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ms.mu.Lock()
	delete(ms.entries, key)
	ms.mu.Unlock()
	return nil
}

// Len returns the number of live entries.
func (ms *MemoryStore) Len() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	now := time.Now()
	n := 0
	for _, e := range ms.entries {
		if !e.expired(now) {
			n++
		}
	}
	return n
}

func (ms *MemoryStore) cleanup() {
	ticker := time.NewTicker(ms.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ms.removeExpired()
		case <-ms.stopCleanup:
			return
		}
	}
}

func (ms *MemoryStore) removeExpired() {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := time.Now()
	for key, e := range ms.entries {
		if e.expired(now) {
			delete(ms.entries, key)
		}
	}
}

// Close stops the cleanup goroutine. Safe to call multiple times.
func (ms *MemoryStore) Close() {
	ms.stopOnce.Do(func() {
		close(ms.stopCleanup)
	})
}
