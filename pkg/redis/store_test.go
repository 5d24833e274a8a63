package redis_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/agencysite/pkg/ratelimiter"
	"github.com/dmitrymomot/agencysite/pkg/redis"
)

// fakeRedis answers commands from a map, mimicking a single Redis database.
type fakeRedis struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *goredis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return goredis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, exp time.Duration) *goredis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return goredis.NewStatusResult("", f.err)
	}
	f.data[key] = string(value.([]byte))
	f.ttls[key] = exp
	return goredis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *goredis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return goredis.NewIntResult(0, f.err)
	}
	var n int64
	for _, k := range keys {
		if _, ok := f.data[k]; ok {
			delete(f.data, k)
			n++
		}
	}
	return goredis.NewIntResult(n, nil)
}

func (f *fakeRedis) Ping(context.Context) *goredis.StatusCmd {
	if f.err != nil {
		return goredis.NewStatusResult("", f.err)
	}
	return goredis.NewStatusResult("PONG", nil)
}

func TestStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newFakeRedis()
	store := redis.NewStore(db, "agencysite:")

	got, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Set(ctx, "rateLimit_contactForm", []byte(`{"count":1}`), time.Minute))
	assert.Equal(t, `{"count":1}`, db.data["agencysite:rateLimit_contactForm"])
	assert.Equal(t, time.Minute, db.ttls["agencysite:rateLimit_contactForm"])

	got, err = store.Get(ctx, "rateLimit_contactForm")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"count":1}`), got)

	require.NoError(t, store.Delete(ctx, "rateLimit_contactForm"))
	require.NoError(t, store.Delete(ctx, "rateLimit_contactForm"))
	assert.Empty(t, db.data)
}

func TestStore_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newFakeRedis()
	db.err = errors.New("connection refused")
	store := redis.NewStore(db, "")

	_, err := store.Get(ctx, "k")
	require.ErrorIs(t, err, redis.ErrStoreOperation)
	require.ErrorIs(t, store.Set(ctx, "k", []byte("v"), 0), redis.ErrStoreOperation)
	require.ErrorIs(t, store.Delete(ctx, "k"), redis.ErrStoreOperation)
}

func TestStore_WithLimiter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := newFakeRedis()
	limiter := ratelimiter.MustNew(redis.NewStore(db, "app:"), ratelimiter.Config{Limit: 2, Window: time.Minute})

	assert.True(t, limiter.Allow(ctx, "contactForm").Allowed)
	assert.True(t, limiter.Allow(ctx, "contactForm").Allowed)
	d := limiter.Allow(ctx, "contactForm")
	assert.False(t, d.Allowed)
	assert.False(t, d.Degraded)
	assert.Equal(t, 2*time.Minute, db.ttls["app:rateLimit_contactForm"])

	db.mu.Lock()
	db.err = errors.New("down")
	db.mu.Unlock()
	d = limiter.Allow(ctx, "contactForm")
	assert.True(t, d.Allowed, "store outage fails open")
	assert.True(t, d.Degraded)
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	db := newFakeRedis()
	check := redis.Healthcheck(db)
	require.NoError(t, check(context.Background()))

	db.err = errors.New("down")
	require.ErrorIs(t, check(context.Background()), redis.ErrHealthcheckFailed)
}

func TestConnect_InvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := redis.Connect(context.Background(), redis.Config{})
	require.ErrorIs(t, err, redis.ErrEmptyConnectionURL)

	_, err = redis.Connect(context.Background(), redis.Config{ConnectionURL: "http://not-redis"})
	require.ErrorIs(t, err, redis.ErrFailedToParseRedisConnString)
}
