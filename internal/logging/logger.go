// Package logging builds the structured loggers used by the CLI.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config selects level, format and destination.
type Config struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"` // json or text
	Output    string `yaml:"output"` // stdout, stderr, or file path
	Component string `yaml:"component"`
}

// New creates a logger writing to stdout, stderr or the file named by
// cfg.Output. Unknown levels fall back to info; a file that cannot be
// opened falls back to stderr. The returned close function releases the
// file and must be called once the logger is no longer used.
func New(cfg Config, stdout, stderr io.Writer) (*slog.Logger, func() error) {
	noop := func() error { return nil }
	switch cfg.Output {
	case "stderr", "":
		return NewWithWriter(cfg, stderr), noop
	case "stdout":
		return NewWithWriter(cfg, stdout), noop
	}
	f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return NewWithWriter(cfg, stderr), noop
	}
	return NewWithWriter(cfg, f), f.Close
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(cfg Config, w io.Writer) *slog.Logger {
	level := ParseLevel(cfg.Level)
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	if cfg.Component != "" {
		logger = logger.With(slog.String("component", cfg.Component))
	}
	return logger
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
