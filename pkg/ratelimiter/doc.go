// Package ratelimiter provides a fixed-window attempt limiter persisted in a
// pluggable key-value store.
//
// Every action has one record, {count, timestamp}, stored as JSON under
// "rateLimit_<action>". The timestamp marks the start of the window in Unix
// milliseconds. An attempt is evaluated as follows:
//
//   - if more than Window has passed since the timestamp, the record is
//     overwritten with {1, now} and the attempt is allowed
//   - else if the count already reached Limit, the attempt is denied and the
//     record is left untouched
//   - else the count is incremented (timestamp unchanged) and the attempt is
//     allowed
//
// Missing or malformed records are read as {0, 0}.
//
// # Failure policy
//
// The limiter prefers availability over strictness. When the store returns an
// error on read or write the attempt is allowed and the returned Decision has
// Degraded set. Callers never see a store error from Allow.
//
// # Usage
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter := ratelimiter.MustNew(store, ratelimiter.DefaultConfig)
//
//	if d := limiter.Allow(ctx, "contactForm"); !d.Allowed {
//		// retry after d.RetryAfter()
//	}
//
// # Scoping
//
// One backend can serve many visitors. Scoped returns a limiter whose records
// live under a private prefix, and Composite/Header build scope keys from a
// request:
//
//	scope := ratelimiter.Composite(clientIP, ratelimiter.Header("User-Agent"))
//	d := limiter.Scoped(scope(r)).Allow(ctx, "contactForm")
//
// # Concurrency
//
// The read-modify-write of a record is serialised per key inside the process
// with a fixed set of striped mutexes. Distinct processes sharing a Redis
// store may race on the same visitor key; the worst case is one extra
// allowed attempt.
package ratelimiter
