// Package logx builds the process logger from LOG_LEVEL and LOG_FORMAT.
package logx

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New builds a slog.Logger writing to w (nil means stdout). Level and format
// come from the environment so they can be flipped without a rebuild.
func New(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}

	level := new(slog.LevelVar)
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level.Set(slog.LevelDebug)
	case "warn":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	default:
		level.Set(slog.LevelInfo)
	}

	var h slog.Handler
	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	} else {
		h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	}
	return slog.New(h)
}
