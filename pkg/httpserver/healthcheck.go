package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/dmitrymomot/agencysite/pkg/logger"
)

// CheckFunc reports whether a dependency is usable.
type CheckFunc func(context.Context) error

// HealthResponse is the body written by the health handlers.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

const (
	StatusAlive    = "ALIVE"
	StatusReady    = "READY"
	StatusNotReady = "NOT_READY"
)

// LivenessHandler always answers 200 with status ALIVE.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeHealth(w, http.StatusOK, HealthResponse{Status: StatusAlive})
	}
}

// ReadinessHandler runs every check with the request context bounded by
// timeout. It answers 200 READY when all pass, otherwise 503 NOT_READY with
// the failing check names. Error details are logged, not returned.
func ReadinessHandler(log *slog.Logger, timeout time.Duration, checks map[string]CheckFunc) http.HandlerFunc {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		resp := HealthResponse{Status: StatusReady, Checks: make(map[string]string, len(names))}
		code := http.StatusOK
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed", slog.String("check", name), logger.Error(err))
				resp.Checks[name] = "fail"
				resp.Status = StatusNotReady
				code = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "ok"
		}
		writeHealth(w, code, resp)
	}
}

func writeHealth(w http.ResponseWriter, code int, resp HealthResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}
