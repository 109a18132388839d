package app

import (
	"io"
	"log/slog"
)

// newLogger builds an isolated logger writing to outW. Levels are the slog
// names (debug, info, warn, error) in any case; anything else logs at warn,
// the CLI default. formatStr "json" selects the JSON handler, otherwise text.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}
