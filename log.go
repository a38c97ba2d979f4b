package homepage

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

var slogCtxKey = ctxKey{}

func logger(ctx context.Context) *slog.Logger {
	val := ctx.Value(slogCtxKey)
	if val == nil {
		return slog.New(noopHandler{})
	}
	l, ok := val.(*slog.Logger)
	if !ok {
		return slog.New(noopHandler{})
	}
	return l
}

// LoggingContext returns a context that carries l. Builds and the live
// reloader log through it; without one they stay quiet.
func LoggingContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, slogCtxKey, l)
}

type noopHandler struct{}

func (noopHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return false
}

func (noopHandler) Handle(_ context.Context, _ slog.Record) error {
	return nil
}

func (n noopHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return n
}

func (n noopHandler) WithGroup(_ string) slog.Handler {
	return n
}
