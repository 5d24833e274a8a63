// Package fingerprint derives a stable, anonymous visitor key from an HTTP
// request. The key correlates log records of one visitor without logging raw
// IP addresses or headers.
//
// The fingerprint hashes the client IP, User-Agent and Accept-Language.
// Headers that change between a page load and a fetch call (Accept,
// Sec-Fetch-*) are left out so one browser keeps one key. Every input is
// client controlled apart from the IP, so the fingerprint is not suitable
// for enforcing limits.
//
//	log := logger.New(logger.WithExtractor(fingerprint.LoggerExtractor()))
//	r.Use(fingerprint.Middleware)
package fingerprint
