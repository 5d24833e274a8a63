package fingerprint

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/agencysite/pkg/logger"
)

// LoggerExtractor adds the visitor fingerprint to log records emitted with a
// request context.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		fp := FromContext(ctx)
		if fp == "" {
			return slog.Attr{}, false
		}
		return slog.String("fingerprint", fp), true
	}
}
