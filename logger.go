package ggdom

import (
	"log/slog"

	"github.com/gogpu/ggdom/internal/logging"
)

// SetLogger configures the logger for ggdom and all its sub-packages.
// By default, ggdom produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by ggdom:
//   - [slog.LevelDebug]: per-frame diagnostics (change-set sizes, item counts, skipped images)
//   - [slog.LevelInfo]: lifecycle events (window created, fonts added)
//   - [slog.LevelWarn]: non-fatal issues (font size out of range, missing fonts and texts)
//
// Example:
//
//	ggdom.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by ggdom. It is never nil.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}
