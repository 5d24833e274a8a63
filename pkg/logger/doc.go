// Package logger builds *slog.Logger instances with environment presets,
// static attributes and attributes pulled from context.Context.
//
//	log := logger.New(
//		logger.WithEnvironment("production", "agencysite"),
//		logger.WithContextValue("request_id", requestIDKey{}),
//	)
//	log.InfoContext(ctx, "inquiry delivered", logger.SubmissionID(id))
//
// Production and staging presets log JSON at INFO; anything else is treated
// as development and logs text at DEBUG. Attribute helpers in attr.go keep
// key names consistent across packages.
package logger
