package ratelimiter

import (
	"hash/fnv"
	"net/http"
	"strconv"
	"strings"
)

// maxKeyLength is the maximum allowed length for a scope key
// to prevent excessively long storage keys.
const maxKeyLength = 64

// KeyFunc extracts a scope key from the request.
type KeyFunc func(r *http.Request) string

// Composite combines multiple key functions into one.
// Long keys (>64 chars) are hashed using FNV-1a for storage efficiency.
func Composite(keyFuncs ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(keyFuncs))
		for _, fn := range keyFuncs {
			if key := fn(r); key != "" {
				parts = append(parts, key)
			}
		}

		if len(parts) == 0 {
			return ""
		}

		if len(parts) == 1 && len(parts[0]) <= maxKeyLength {
			return parts[0]
		}

		combined := strings.Join(parts, ":")
		if len(combined) > maxKeyLength {
			return hashKey(combined)
		}
		return combined
	}
}

// Header returns a KeyFunc reading a request header. Values are hashed so
// arbitrary header content never reaches the store verbatim.
func Header(name string) KeyFunc {
	return func(r *http.Request) string {
		v := strings.TrimSpace(r.Header.Get(name))
		if v == "" {
			return ""
		}
		return hashKey(v)
	}
}

// hashKey encodes FNV-1a in base36 (~13 chars).
func hashKey(s string) string {
	h := fnv.New64a()
	h.Write([]byte(s))
	return strconv.FormatUint(h.Sum64(), 36)
}
