// Package log is a thin structured-logging layer over slog. The CLI
// renders its interface on stdout, so diagnostics always go to stderr.
package log

import (
	"io"
	"log/slog"
	"os"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum level to emit.
	Level Level

	// JSON switches from text to JSON output.
	JSON bool

	// Output is where logs are written. Defaults to stderr.
	Output io.Writer
}

// DefaultConfig logs at info level, text format, to stderr.
func DefaultConfig() Config {
	return Config{Level: LevelInfo, Output: os.Stderr}
}

// Logger wraps slog with the module's configuration.
type Logger struct {
	slog   *slog.Logger
	config Config
}

// New creates a Logger from config.
func New(config Config) *Logger {
	if config.Output == nil {
		config.Output = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: config.Level.ToSlogLevel()}

	var handler slog.Handler
	if config.JSON {
		handler = slog.NewJSONHandler(config.Output, opts)
	} else {
		handler = slog.NewTextHandler(config.Output, opts)
	}
	return &Logger{slog: slog.New(handler), config: config}
}

// Default creates a logger with default configuration.
func Default() *Logger {
	return New(DefaultConfig())
}

// With returns a Logger with the given attributes added to every entry.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{slog: l.slog.With(args...), config: l.config}
}

// WithError adds the error to the logger.
func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.With("error", err.Error())
}

// Debug logs at debug level.
func (l *Logger) Debug(msg string, args ...any) { l.slog.Debug(msg, args...) }

// Info logs at info level.
func (l *Logger) Info(msg string, args ...any) { l.slog.Info(msg, args...) }

// Warn logs at warn level.
func (l *Logger) Warn(msg string, args ...any) { l.slog.Warn(msg, args...) }

// Error logs at error level.
func (l *Logger) Error(msg string, args ...any) { l.slog.Error(msg, args...) }
