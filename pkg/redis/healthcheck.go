package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Pinger is the part of a Redis client the healthcheck needs.
type Pinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// Healthcheck returns a readiness probe that pings Redis.
func Healthcheck(client Pinger) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
