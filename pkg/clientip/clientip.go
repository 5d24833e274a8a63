package clientip

import (
	"context"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// DefaultHeaders lists proxy headers in priority order.
var DefaultHeaders = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// Resolver extracts client addresses from requests.
type Resolver struct {
	headers []string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHeaders replaces the trusted header list. An empty list makes the
// resolver use RemoteAddr only.
func WithHeaders(headers ...string) Option {
	return func(r *Resolver) {
		r.headers = append([]string(nil), headers...)
	}
}

// New creates a Resolver trusting DefaultHeaders unless configured otherwise.
func New(opts ...Option) *Resolver {
	r := &Resolver{headers: DefaultHeaders}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultResolver = New()

// GetIP resolves the client IP of r with the default header list.
// Returns "" when no valid address is found.
func GetIP(r *http.Request) string {
	return defaultResolver.IP(r)
}

// IP returns the normalized client address of req, or "".
func (rs *Resolver) IP(req *http.Request) string {
	for _, name := range rs.headers {
		v := req.Header.Get(name)
		if v == "" {
			continue
		}
		// X-Forwarded-For and similar hold a comma separated chain.
		for part := range strings.SplitSeq(v, ",") {
			if ip := parseIP(part); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(req.RemoteAddr)
	if err != nil {
		return parseIP(req.RemoteAddr)
	}
	return parseIP(host)
}

// Middleware stores the resolved address in the request context.
func (rs *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithIP(r.Context(), rs.IP(r))))
	})
}

// Middleware is Resolver.Middleware with the default header list.
func Middleware(next http.Handler) http.Handler {
	return defaultResolver.Middleware(next)
}

type ctxKey struct{}

// WithIP stores ip in ctx.
func WithIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ctxKey{}, ip)
}

// FromContext returns the address stored by Middleware, or "".
func FromContext(ctx context.Context) string {
	ip, _ := ctx.Value(ctxKey{}).(string)
	return ip
}

func parseIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return ""
	}
	return addr.Unmap().WithZone("").String()
}
