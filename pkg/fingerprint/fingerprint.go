package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strings"

	"github.com/dmitrymomot/agencysite/pkg/clientip"
)

// Generate returns a 32 character hex fingerprint of the request's visitor.
// It returns "" when the request carries nothing to identify the visitor.
func Generate(r *http.Request) string {
	components := []string{
		clientip.GetIP(r),
		strings.TrimSpace(r.UserAgent()),
		strings.TrimSpace(r.Header.Get("Accept-Language")),
	}

	empty := true
	for _, c := range components {
		if c != "" {
			empty = false
			break
		}
	}
	if empty {
		return ""
	}

	sum := sha256.Sum256([]byte(strings.Join(components, "|")))
	return hex.EncodeToString(sum[:16])
}

// FromRequest returns the fingerprint stored by Middleware, generating it
// when the middleware did not run.
func FromRequest(r *http.Request) string {
	if fp := FromContext(r.Context()); fp != "" {
		return fp
	}
	return Generate(r)
}
