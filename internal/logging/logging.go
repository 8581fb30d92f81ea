// Package logging builds the process-wide logger.
package logging

import (
	"io"
	"log/slog"
)

// New returns a text-handler logger on w. Debug widens the level to include
// the auth-flow tracing the client logs at debug.
func New(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
