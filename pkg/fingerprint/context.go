package fingerprint

import "context"

type ctxKey struct{}

// WithContext stores fp in ctx.
func WithContext(ctx context.Context, fp string) context.Context {
	return context.WithValue(ctx, ctxKey{}, fp)
}

// FromContext returns the fingerprint stored in ctx, or "".
func FromContext(ctx context.Context) string {
	fp, _ := ctx.Value(ctxKey{}).(string)
	return fp
}
