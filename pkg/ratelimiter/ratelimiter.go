package ratelimiter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/agencysite/pkg/logger"
)

// RateLimiter decides whether another attempt of an action is allowed.
type RateLimiter interface {
	Allow(ctx context.Context, action string) Decision
}

// Limiter implements a fixed-window attempt counter on top of a Store.
//
// The limiter fails open: when the store cannot be read or written the
// attempt is allowed and the decision is marked Degraded.
type Limiter struct {
	store  Store
	scope  string
	config Config
	now    func() time.Time
	logger *slog.Logger
	locks  *stripedLock
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}

// WithLogger sets the logger used to report degraded decisions.
func WithLogger(log *slog.Logger) Option {
	return func(l *Limiter) {
		if log != nil {
			l.logger = log
		}
	}
}

// New creates a Limiter backed by store.
func New(store Store, config Config, opts ...Option) (*Limiter, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if err := config.validate(); err != nil {
		return nil, err
	}

	l := &Limiter{
		store:  store,
		config: config,
		now:    time.Now,
		logger: slog.New(slog.DiscardHandler),
		locks:  newStripedLock(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// MustNew is like New but panics on invalid arguments.
func MustNew(store Store, config Config, opts ...Option) *Limiter {
	l, err := New(store, config, opts...)
	if err != nil {
		panic(err)
	}
	return l
}

// Scoped returns a limiter sharing configuration and locks whose records live
// in a keyspace private to scope (a visitor, a session).
func (l *Limiter) Scoped(scope string) *Limiter {
	if scope == "" {
		return l
	}
	cp := *l
	cp.scope = l.scope + scope + ":"
	cp.store = Prefixed(l.store, scope+":")
	return &cp
}

// Config returns the limiter configuration.
func (l *Limiter) Config() Config {
	return l.config
}

// Allow records an attempt of action and reports whether it is permitted.
//
//   - when the window has elapsed the counter restarts at 1
//   - when the counter reached the limit the attempt is denied and nothing is written
//   - otherwise the counter is incremented, keeping the window start
func (l *Limiter) Allow(ctx context.Context, action string) Decision {
	key := StorageKey(action)

	mu := l.locks.get(l.scope + key)
	mu.Lock()
	defer mu.Unlock()

	now := l.now()
	nowMs := now.UnixMilli()
	windowMs := l.config.Window.Milliseconds()

	raw, err := l.store.Get(ctx, key)
	if err != nil {
		return l.failOpen(ctx, key, now, errors.Join(ErrStoreUnavailable, err))
	}
	rec := decodeRecord(raw)

	switch {
	case nowMs-rec.Timestamp > windowMs:
		rec = Record{Count: 1, Timestamp: nowMs}
	case rec.Count >= l.config.Limit:
		return Decision{
			Allowed: false,
			Count:   rec.Count,
			Limit:   l.config.Limit,
			ResetAt: time.UnixMilli(rec.Timestamp + windowMs),
		}
	default:
		rec.Count++
	}

	if err := l.save(ctx, key, rec); err != nil {
		return l.failOpen(ctx, key, now, err)
	}

	return Decision{
		Allowed: true,
		Count:   rec.Count,
		Limit:   l.config.Limit,
		ResetAt: time.UnixMilli(rec.Timestamp + windowMs),
	}
}

// Reset forgets every attempt of action.
func (l *Limiter) Reset(ctx context.Context, action string) error {
	key := StorageKey(action)

	mu := l.locks.get(l.scope + key)
	mu.Lock()
	defer mu.Unlock()

	if err := l.store.Delete(ctx, key); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// StorageKey returns the store key holding the record of action.
func StorageKey(action string) string {
	return KeyPrefix + action
}

func (l *Limiter) save(ctx context.Context, key string, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	// Records outlive the window so the window check, not expiry, decides resets.
	if err := l.store.Set(ctx, key, data, 2*l.config.Window); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (l *Limiter) failOpen(ctx context.Context, key string, now time.Time, err error) Decision {
	l.logger.WarnContext(ctx, "rate limit store failed, allowing attempt",
		slog.String("key", key),
		logger.Error(err),
	)
	return Decision{
		Allowed:  true,
		Limit:    l.config.Limit,
		ResetAt:  now.Add(l.config.Window),
		Degraded: true,
	}
}

// decodeRecord treats missing or malformed data as an empty record.
func decodeRecord(raw []byte) Record {
	var rec Record
	if len(raw) == 0 {
		return rec
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return Record{}
	}
	return rec
}

func (c Config) validate() error {
	if c.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidConfig, c.Limit)
	}
	if c.Window < time.Millisecond {
		return fmt.Errorf("%w: window must be at least 1ms, got %v", ErrInvalidConfig, c.Window)
	}
	return nil
}

const lockStripes = 64

// stripedLock bounds the number of mutexes regardless of how many keys exist.
type stripedLock struct {
	stripes [lockStripes]sync.Mutex
}

func newStripedLock() *stripedLock {
	return &stripedLock{}
}

func (s *stripedLock) get(key string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(key))
	return &s.stripes[h.Sum32()%lockStripes]
}
