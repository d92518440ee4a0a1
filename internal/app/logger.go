package app

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/heartmarshall/xword-parse/internal/config"
)

// NewLogger creates a *slog.Logger from cfg writing to w (os.Stderr when w
// is nil) and installs it as the slog default.
//
// Format "json" produces structured JSON output; anything else produces
// human-readable text with source locations. Level is one of debug, info,
// warn, error (case-insensitive) and defaults to info.
func NewLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}

	json := strings.EqualFold(strings.TrimSpace(cfg.Format), "json")
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: !json,
	}

	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
