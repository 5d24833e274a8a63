// Package redis connects to Redis and exposes it as a ratelimiter.Store.
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	store := redis.NewStore(client, cfg.KeyPrefix)
//	limiter, err := ratelimiter.New(store, ratelimiter.DefaultConfig)
//
// Connect retries the initial ping according to Config. Healthcheck turns a
// client into a readiness probe for httpserver.
package redis
