package requestid

import (
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

// Header carries the request id in both directions.
const Header = "X-Request-ID"

const maxIDLength = 128

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Generator produces a new request id.
type Generator func() string

// Option configures the middleware built by New.
type Option func(*options)

type options struct {
	header   string
	generate Generator
}

// WithHeader reads and writes the id under a different header.
func WithHeader(name string) Option {
	return func(o *options) {
		if name != "" {
			o.header = name
		}
	}
}

// WithGenerator replaces the UUID generator.
func WithGenerator(g Generator) Option {
	return func(o *options) {
		if g != nil {
			o.generate = g
		}
	}
}

// New builds a request id middleware.
func New(opts ...Option) func(http.Handler) http.Handler {
	o := options{header: Header, generate: uuid.NewString}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(o.header)
			if !Valid(id) {
				id = o.generate()
			}
			w.Header().Set(o.header, id)
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
		})
	}
}

var defaultMiddleware = New()

// Middleware is New with the default header and generator.
func Middleware(next http.Handler) http.Handler {
	return defaultMiddleware(next)
}

// Valid reports whether id is acceptable as a client supplied request id.
func Valid(id string) bool {
	return id != "" && len(id) <= maxIDLength && validID.MatchString(id)
}
