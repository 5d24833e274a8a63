package ratelimiter

import "time"

// KeyPrefix namespaces every record written by the limiter.
const KeyPrefix = "rateLimit_"

// Config defines a fixed counting window.
type Config struct {
	Limit  int           `env:"RATE_LIMIT_ATTEMPTS" envDefault:"3"` // Attempts allowed per window
	Window time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"5m"`  // Window length, measured from the first attempt
}

// DefaultConfig is the contact form policy: 3 attempts per 5 minutes.
var DefaultConfig = Config{Limit: 3, Window: 5 * time.Minute}

// Record is the persisted per-action counter. Timestamp is the window start
// in Unix milliseconds.
type Record struct {
	Count     int   `json:"count"`
	Timestamp int64 `json:"timestamp"`
}

// Decision is the outcome of a single Allow call.
type Decision struct {
	Allowed  bool
	Count    int       // Attempts recorded in the current window
	Limit    int       // Attempts allowed per window
	ResetAt  time.Time // When the current window expires
	Degraded bool      // True when the store failed and the limiter failed open
}

// RetryAfter returns how long to wait before the next attempt is allowed.
// Returns 0 if the attempt was allowed.
func (d Decision) RetryAfter() time.Duration {
	if d.Allowed {
		return 0
	}
	return max(0, time.Until(d.ResetAt))
}

// Remaining returns the number of attempts left in the current window.
func (d Decision) Remaining() int {
	return max(0, d.Limit-d.Count)
}
