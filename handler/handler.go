package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/dmitrymomot/agencysite/pkg/logger"
)

// Response renders itself to an http.ResponseWriter.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// HandlerFunc handles a request whose body was decoded into R.
type HandlerFunc[R any] func(r *http.Request, req R) Response

// Bind decodes a request into v.
type Bind func(r *http.Request, v any) error

// BindJSON decodes a JSON body of at most maxBytes. Unknown fields are
// rejected.
func BindJSON(maxBytes int64) Bind {
	return func(r *http.Request, v any) error {
		if ct := r.Header.Get("Content-Type"); ct != "" {
			mt, _, err := mime.ParseMediaType(ct)
			if err != nil || mt != "application/json" {
				return ErrUnsupportedMediaType
			}
		}

		dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return ErrRequestEntityTooLarge
			}
			return errors.Join(ErrBadRequest, err)
		}
		if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
			return ErrBadRequest
		}
		return nil
	}
}

type wrapConfig struct {
	binder Bind
	logger *slog.Logger
}

// WrapOption configures Wrap.
type WrapOption func(*wrapConfig)

// WithBinder sets the request binder. Without one the request value stays zero.
func WithBinder(b Bind) WrapOption {
	return func(c *wrapConfig) { c.binder = b }
}

// WithLogger sets the logger used for bind and render failures.
func WithLogger(l *slog.Logger) WrapOption {
	return func(c *wrapConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// Wrap converts a typed HandlerFunc into an http.HandlerFunc. Bind errors
// are rendered as JSON errors.
func Wrap[R any](h HandlerFunc[R], opts ...WrapOption) http.HandlerFunc {
	cfg := &wrapConfig{logger: logger.Discard()}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req R
		if cfg.binder != nil {
			if err := cfg.binder(r, &req); err != nil {
				cfg.logger.DebugContext(r.Context(), "request binding failed", logger.Error(err))
				render(w, r, cfg.logger, JSONError(err))
				return
			}
		}

		resp := h(r, req)
		if resp == nil {
			cfg.logger.ErrorContext(r.Context(), "handler returned no response", logger.Error(ErrNilResponse))
			resp = JSONError(ErrInternalServerError)
		}
		render(w, r, cfg.logger, resp)
	}
}

func render(w http.ResponseWriter, r *http.Request, log *slog.Logger, resp Response) {
	if err := resp.Render(w, r); err != nil {
		log.ErrorContext(r.Context(), "response rendering failed", logger.Error(err))
	}
}
