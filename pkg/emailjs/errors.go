package emailjs

import (
	"errors"
	"fmt"
)

var (
	ErrNotConfigured = errors.New("emailjs: service id, template id and public key are required")
	ErrSendFailed    = errors.New("emailjs: send failed")
)

// APIError is a non-successful response from the EmailJS API.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("emailjs: api responded %d: %s", e.StatusCode, e.Body)
}
