package app

import (
	"io"
	"log/slog"
	"strings"
)

// newLogger creates the application logger writing to logW. It does not set
// the global logger, allowing for isolated logger instances. Unknown levels
// fall back to info.
func newLogger(levelStr, formatStr string, logW io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(formatStr, "json") {
		handler = slog.NewJSONHandler(logW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(logW, handlerOpts)
	}

	return slog.New(handler).With("app", "gridcalc")
}
