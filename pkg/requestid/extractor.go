package requestid

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/agencysite/pkg/logger"
)

// LoggerExtractor adds request_id to log records emitted with a request context.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		id := FromContext(ctx)
		if id == "" {
			return slog.Attr{}, false
		}
		return logger.RequestID(id), true
	}
}
