package slogx

import (
	"context"
	"log/slog"
	"sync"
)

type holderKey struct{}

type loggerHolder struct {
	mu     sync.Mutex
	logger *slog.Logger
}

func (h *loggerHolder) get() *slog.Logger {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.logger
}

func (h *loggerHolder) set(l *slog.Logger) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.logger = l
}

func withHolder(ctx context.Context, h *loggerHolder) context.Context {
	return context.WithValue(ctx, holderKey{}, h)
}

// Annotate extends the context logger with args and, inside HTTPMiddleware,
// also the logger used for the request summary line.
func Annotate(ctx context.Context, args ...any) context.Context {
	ctx = With(ctx, args...)
	if h, ok := ctx.Value(holderKey{}).(*loggerHolder); ok {
		h.set(FromContext(ctx))
	}
	return ctx
}
