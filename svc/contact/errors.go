package contact

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnknownField     = errors.New("contact: unknown form field")
	ErrClosed           = errors.New("contact: controller closed")
	ErrSubmitInProgress = errors.New("contact: submission already in progress")
	ErrRateLimited      = errors.New("contact: too many attempts")
	ErrInvalidForm      = errors.New("contact: form has invalid fields")
	ErrDeliveryFailed   = errors.New("contact: delivery failed")
	ErrInvalidCatalog   = errors.New("contact: invalid catalog")
)

// CooldownError carries the end of the rate-limit window of a rejected submit.
type CooldownError struct {
	ResetAt time.Time
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s: retry after %s", ErrRateLimited, e.ResetAt.UTC().Format(time.RFC3339))
}

func (e *CooldownError) Unwrap() error { return ErrRateLimited }

// RetryAfter returns the remaining cooldown relative to now.
func (e *CooldownError) RetryAfter(now time.Time) time.Duration {
	return max(0, e.ResetAt.Sub(now))
}
