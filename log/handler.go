// Package log provides structured logging (slog) routed through the host.
// A zome has no stderr worth speaking of; log records travel over the same
// bridge as every other capability, under the log_message tag.
package log

import (
	"context"
	"log/slog"
)

// HostLogHandler implements slog.Handler by shipping each record to the
// conductor's log sink.
type HostLogHandler struct {
	opts  handlerConfig
	attrs []slog.Attr
}

// HandlerOption configures the HostLogHandler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	level slog.Level
}

func defaultHandlerConfig() handlerConfig {
	return handlerConfig{
		level: slog.LevelInfo,
	}
}

// WithLevel sets the minimum log level to report.
// Records below this level are filtered on the guest side, saving the
// boundary crossing entirely.
func WithLevel(level slog.Level) HandlerOption {
	return func(c *handlerConfig) {
		c.level = level
	}
}

// NewHandler creates a new HostLogHandler with the given options.
func NewHandler(opts ...HandlerOption) *HostLogHandler {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &HostLogHandler{opts: cfg}
}

// Enabled reports whether the handler handles records at the given level.
func (h *HostLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.level
}

// WithAttrs returns a handler that includes the given attributes on every
// record.
func (h *HostLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

// WithGroup returns the handler unchanged; the flat wire format does not
// carry groups.
func (h *HostLogHandler) WithGroup(string) slog.Handler {
	clone := *h
	return &clone
}

// Install sets the default slog logger to route through the host.
func Install(opts ...HandlerOption) {
	slog.SetDefault(slog.New(NewHandler(opts...)))
}
