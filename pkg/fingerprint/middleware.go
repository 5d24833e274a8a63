package fingerprint

import "net/http"

// Middleware computes the visitor fingerprint once per request and stores it
// in the request context. A fingerprint already in the context is kept.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), FromRequest(r))))
	})
}
