package sprig

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards all records. Enabled returns false so that callers skip
// formatting altogether.
//
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger sets the logger used by sprig and its sub-packages. Logging is
// disabled by default. Passing nil disables logging again.
//
// Log levels:
//   - slog.LevelDebug: GL setup, texture uploads, unimplemented primitives
//   - slog.LevelInfo: lifecycle events
//   - slog.LevelWarn: invalid draw calls, clamped options
//   - slog.LevelError: misuse of pooled resources
//
// SetLogger is safe for concurrent use. Contexts pick up the logger in effect
// when they are created.
//
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
//
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
