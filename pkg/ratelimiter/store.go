package ratelimiter

import (
	"context"
	"time"
)

// Store is a string-keyed byte store. Get returns nil, nil for missing keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key. A zero ttl means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// prefixedStore scopes every key of a shared store.
type prefixedStore struct {
	prefix string
	next   Store
}

// Prefixed returns a Store that prepends prefix to every key before
// delegating to store. Used to give each visitor a private keyspace in a
// shared backend.
func Prefixed(store Store, prefix string) Store {
	if prefix == "" {
		return store
	}
	if p, ok := store.(*prefixedStore); ok {
		return &prefixedStore{prefix: p.prefix + prefix, next: p.next}
	}
	return &prefixedStore{prefix: prefix, next: store}
}

func (p *prefixedStore) Get(ctx context.Context, key string) ([]byte, error) {
	return p.next.Get(ctx, p.prefix+key)
}

func (p *prefixedStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return p.next.Set(ctx, p.prefix+key, value, ttl)
}

func (p *prefixedStore) Delete(ctx context.Context, key string) error {
	return p.next.Delete(ctx, p.prefix+key)
}
