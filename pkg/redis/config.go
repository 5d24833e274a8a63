package redis

import "time"

// Config describes the Redis connection used by the rate-limit store.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL"`                             // redis://:password@localhost:6379/0; empty disables Redis
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`   // connection attempts before giving up
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"2s"`  // pause between attempts
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"10s"` // overall budget for Connect
	KeyPrefix      string        `env:"REDIS_KEY_PREFIX" envDefault:"agencysite:"`
}

// Enabled reports whether a connection URL is configured.
func (c Config) Enabled() bool {
	return c.ConnectionURL != ""
}
