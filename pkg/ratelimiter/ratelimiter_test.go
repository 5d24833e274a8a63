package ratelimiter_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/agencysite/pkg/ratelimiter"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.UnixMilli(1_700_000_000_000)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// failingStore returns configured errors and records writes.
type failingStore struct {
	getErr error
	setErr error
	data   []byte
	sets   int
}

func (s *failingStore) Get(context.Context, string) ([]byte, error) {
	return s.data, s.getErr
}

func (s *failingStore) Set(_ context.Context, _ string, value []byte, _ time.Duration) error {
	s.sets++
	return s.setErr
}

func (s *failingStore) Delete(context.Context, string) error {
	return s.getErr
}

func newLimiter(t *testing.T, clock *fakeClock) (*ratelimiter.Limiter, *ratelimiter.MemoryStore) {
	t.Helper()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	t.Cleanup(store.Close)

	l, err := ratelimiter.New(store, ratelimiter.Config{Limit: 3, Window: 300000 * time.Millisecond},
		ratelimiter.WithClock(clock.Now),
	)
	require.NoError(t, err)
	return l, store
}

func readRecord(t *testing.T, store ratelimiter.Store, action string) ratelimiter.Record {
	t.Helper()

	raw, err := store.Get(context.Background(), ratelimiter.StorageKey(action))
	require.NoError(t, err)
	require.NotNil(t, raw)

	var rec ratelimiter.Record
	require.NoError(t, json.Unmarshal(raw, &rec))
	return rec
}

func TestNew(t *testing.T) {
	t.Parallel()

	store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
	t.Cleanup(store.Close)

	tests := []struct {
		name     string
		store    ratelimiter.Store
		config   ratelimiter.Config
		wantErr  error
		errorMsg string
	}{
		{name: "valid config", store: store, config: ratelimiter.DefaultConfig},
		{name: "nil store", store: nil, config: ratelimiter.DefaultConfig, wantErr: ratelimiter.ErrNilStore},
		{name: "zero limit", store: store, config: ratelimiter.Config{Limit: 0, Window: time.Second}, wantErr: ratelimiter.ErrInvalidConfig, errorMsg: "limit must be positive"},
		{name: "negative limit", store: store, config: ratelimiter.Config{Limit: -1, Window: time.Second}, wantErr: ratelimiter.ErrInvalidConfig, errorMsg: "limit must be positive"},
		{name: "sub-millisecond window", store: store, config: ratelimiter.Config{Limit: 1, Window: time.Microsecond}, wantErr: ratelimiter.ErrInvalidConfig, errorMsg: "window must be at least 1ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l, err := ratelimiter.New(tt.store, tt.config)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, l)
				if tt.errorMsg != "" {
					assert.Contains(t, err.Error(), tt.errorMsg)
				}
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, l)
		})
	}

	assert.Panics(t, func() { ratelimiter.MustNew(nil, ratelimiter.DefaultConfig) })
}

func TestLimiter_Allow(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("allows limit attempts then denies", func(t *testing.T) {
		t.Parallel()
		clock := newFakeClock()
		l, store := newLimiter(t, clock)

		for i := 1; i <= 3; i++ {
			d := l.Allow(ctx, "contactForm")
			assert.True(t, d.Allowed, "attempt %d", i)
			assert.Equal(t, i, d.Count)
			assert.False(t, d.Degraded)
			clock.Advance(time.Second)
		}

		d := l.Allow(ctx, "contactForm")
		assert.False(t, d.Allowed)
		assert.Equal(t, 3, d.Count)
		assert.Equal(t, 0, d.Remaining())

		rec := readRecord(t, store, "contactForm")
		assert.Equal(t, 3, rec.Count)
	})

	t.Run("first attempt starts the window", func(t *testing.T) {
		t.Parallel()
		clock := newFakeClock()
		l, store := newLimiter(t, clock)

		start := clock.Now()
		l.Allow(ctx, "contactForm")
		clock.Advance(time.Minute)
		l.Allow(ctx, "contactForm")

		rec := readRecord(t, store, "contactForm")
		assert.Equal(t, 2, rec.Count)
		assert.Equal(t, start.UnixMilli(), rec.Timestamp)
	})

	t.Run("denial leaves the record unchanged", func(t *testing.T) {
		t.Parallel()
		clock := newFakeClock()
		l, store := newLimiter(t, clock)

		for range 3 {
			l.Allow(ctx, "contactForm")
		}
		before := readRecord(t, store, "contactForm")

		clock.Advance(time.Minute)
		assert.False(t, l.Allow(ctx, "contactForm").Allowed)
		assert.Equal(t, before, readRecord(t, store, "contactForm"))
	})

	t.Run("resets after the window elapses", func(t *testing.T) {
		t.Parallel()
		clock := newFakeClock()
		l, store := newLimiter(t, clock)

		for range 4 {
			l.Allow(ctx, "contactForm")
		}

		clock.Advance(300001 * time.Millisecond)
		d := l.Allow(ctx, "contactForm")
		assert.True(t, d.Allowed)
		assert.Equal(t, 1, d.Count)

		rec := readRecord(t, store, "contactForm")
		assert.Equal(t, 1, rec.Count)
		assert.Equal(t, clock.Now().UnixMilli(), rec.Timestamp)
	})

	t.Run("window boundary is exclusive", func(t *testing.T) {
		t.Parallel()
		clock := newFakeClock()
		l, _ := newLimiter(t, clock)

		for range 3 {
			l.Allow(ctx, "contactForm")
		}

		// exactly one window later is still inside the window
		clock.Advance(300000 * time.Millisecond)
		assert.False(t, l.Allow(ctx, "contactForm").Allowed)

		clock.Advance(time.Millisecond)
		assert.True(t, l.Allow(ctx, "contactForm").Allowed)
	})

	t.Run("actions are counted separately", func(t *testing.T) {
		t.Parallel()
		clock := newFakeClock()
		l, _ := newLimiter(t, clock)

		for range 3 {
			l.Allow(ctx, "contactForm")
		}
		assert.False(t, l.Allow(ctx, "contactForm").Allowed)
		assert.True(t, l.Allow(ctx, "newsletter").Allowed)
	})

	t.Run("retry after reflects window end", func(t *testing.T) {
		t.Parallel()
		store := ratelimiter.NewMemoryStore(ratelimiter.WithCleanupInterval(0))
		defer store.Close()

		l := ratelimiter.MustNew(store, ratelimiter.Config{Limit: 1, Window: time.Hour})
		assert.Zero(t, l.Allow(ctx, "a").RetryAfter())

		d := l.Allow(ctx, "a")
		assert.False(t, d.Allowed)
		assert.InDelta(t, time.Hour.Seconds(), d.RetryAfter().Seconds(), 5)
	})
}

func TestLimiter_MalformedRecord(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	for name, raw := range map[string]string{
		"not json":     "{{{",
		"wrong shape":  `["x"]`,
		"wrong fields": `{"count":"three"}`,
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			clock := newFakeClock()
			l, store := newLimiter(t, clock)

			require.NoError(t, store.Set(ctx, ratelimiter.StorageKey("contactForm"), []byte(raw), 0))

			d := l.Allow(ctx, "contactForm")
			assert.True(t, d.Allowed)
			assert.Equal(t, 1, d.Count)
			assert.Equal(t, ratelimiter.Record{Count: 1, Timestamp: clock.Now().UnixMilli()}, readRecord(t, store, "contactForm"))
		})
	}
}

func TestLimiter_FailOpen(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("read failure allows", func(t *testing.T) {
		t.Parallel()
		store := &failingStore{getErr: errors.New("storage disabled")}
		l := ratelimiter.MustNew(store, ratelimiter.DefaultConfig)

		for range 10 {
			d := l.Allow(ctx, "contactForm")
			assert.True(t, d.Allowed)
			assert.True(t, d.Degraded)
		}
		assert.Zero(t, store.sets)
	})

	t.Run("write failure allows", func(t *testing.T) {
		t.Parallel()
		store := &failingStore{setErr: errors.New("quota exceeded")}
		l := ratelimiter.MustNew(store, ratelimiter.DefaultConfig)

		d := l.Allow(ctx, "contactForm")
		assert.True(t, d.Allowed)
		assert.True(t, d.Degraded)
		assert.Equal(t, 1, store.sets)
	})

	t.Run("reset surfaces store errors", func(t *testing.T) {
		t.Parallel()
		store := &failingStore{getErr: errors.New("down")}
		l := ratelimiter.MustNew(store, ratelimiter.DefaultConfig)

		assert.ErrorIs(t, l.Reset(ctx, "contactForm"), ratelimiter.ErrStoreUnavailable)
	})
}

func TestLimiter_Reset(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := newFakeClock()
	l, _ := newLimiter(t, clock)

	for range 3 {
		l.Allow(ctx, "contactForm")
	}
	require.False(t, l.Allow(ctx, "contactForm").Allowed)

	require.NoError(t, l.Reset(ctx, "contactForm"))
	d := l.Allow(ctx, "contactForm")
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Count)
}

func TestLimiter_Scoped(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := newFakeClock()
	l, store := newLimiter(t, clock)

	alice := l.Scoped("alice")
	bob := l.Scoped("bob")

	for range 3 {
		assert.True(t, alice.Allow(ctx, "contactForm").Allowed)
	}
	assert.False(t, alice.Allow(ctx, "contactForm").Allowed)
	assert.True(t, bob.Allow(ctx, "contactForm").Allowed)

	raw, err := store.Get(ctx, "alice:"+ratelimiter.StorageKey("contactForm"))
	require.NoError(t, err)
	assert.NotNil(t, raw)

	raw, err = store.Get(ctx, ratelimiter.StorageKey("contactForm"))
	require.NoError(t, err)
	assert.Nil(t, raw, "unscoped key must stay untouched")

	assert.Same(t, l, l.Scoped(""))
	assert.Equal(t, l.Config(), alice.Config())
}
