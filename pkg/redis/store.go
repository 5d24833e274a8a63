package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/agencysite/pkg/ratelimiter"
)

// Commander is the subset of redis.UniversalClient used by Store.
type Commander interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Store keeps rate-limit records in Redis. Keys are namespaced with an
// optional prefix so several apps can share one database.
type Store struct {
	db     Commander
	prefix string
}

var _ ratelimiter.Store = (*Store)(nil)

// NewStore wraps a Redis client. prefix may be empty.
func NewStore(db Commander, prefix string) *Store {
	return &Store{db: db, prefix: prefix}
}

// Get returns nil, nil for missing keys.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.db.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Join(ErrStoreOperation, err)
	}
	return val, nil
}

// Set stores value with ttl. Zero ttl means no expiration.
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.db.Set(ctx, s.prefix+key, value, ttl).Err(); err != nil {
		return errors.Join(ErrStoreOperation, err)
	}
	return nil
}

// Delete removes a key. Missing keys are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.db.Del(ctx, s.prefix+key).Err(); err != nil {
		return errors.Join(ErrStoreOperation, err)
	}
	return nil
}
