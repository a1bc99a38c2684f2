// Package iologger creates slog loggers from the log configuration.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/treetax/pkg/config"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New creates a logger for the given configuration. For the "file"
// destination the log file is created fresh, its directory is created
// if needed. The returned Closer must be closed when the run is over.
func New(cfg config.LogConfig, homeDir string) (*slog.Logger, io.Closer, error) {
	var writer io.Writer
	var closer io.Closer = nopCloser{}

	switch cfg.Destination {
	case "stdout":
		writer = os.Stdout
	case "file":
		logPath := cfg.File
		if logPath == "" {
			logPath = config.LogFilePath(homeDir)
		}
		err := os.MkdirAll(filepath.Dir(logPath), 0755)
		if err != nil {
			return nil, nil, CreateLogFileError(logPath, err)
		}
		file, err := os.Create(logPath)
		if err != nil {
			return nil, nil, CreateLogFileError(logPath, err)
		}
		writer = file
		closer = file
	default:
		writer = os.Stderr
	}

	return NewWithWriter(writer, cfg), closer, nil
}

// NewWithWriter creates a logger that writes to w with the level and
// format of cfg.
func NewWithWriter(w io.Writer, cfg config.LogConfig) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	}

	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(w, handlerOpts)
	default:
		handler = slog.NewTextHandler(w, handlerOpts)
	}

	return slog.New(handler)
}

// Discard returns a logger that drops all records.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
