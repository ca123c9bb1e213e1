package utils

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewLogger creates a leveled text logger writing to w.
func NewLogger(level slog.Level, w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewFileLogger creates a leveled text logger writing to the given file.
// The returned closer owns the file handle.
func NewFileLogger(level slog.Level, filename string) (*slog.Logger, io.Closer, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("create log file: %w", err)
	}
	return NewLogger(level, file), file, nil
}

// ParseLevel converts a config-file level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}

// SetDefault installs the logger as the process-wide default.
func SetDefault(logger *slog.Logger) {
	slog.SetDefault(logger)
}
