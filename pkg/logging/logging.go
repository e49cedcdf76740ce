// Package logging configures the process-wide slog logger.
//
// Logs go to stderr so generated summaries on stdout stay machine readable.
// The level comes from the LOG_LEVEL environment variable unless a caller
// forces one; --debug on the CLI forces debug.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLogLevel names the environment variable holding the default level.
const EnvLogLevel = "LOG_LEVEL"

type options struct {
	level  *slog.Level
	json   bool
	output io.Writer
}

// Option configures a logger.
type Option func(*options)

// WithLevel forces the log level, ignoring LOG_LEVEL.
func WithLevel(level slog.Level) Option {
	return func(o *options) {
		o.level = &level
	}
}

// WithJSON selects the JSON handler instead of the text handler.
func WithJSON(enabled bool) Option {
	return func(o *options) {
		o.json = enabled
	}
}

// WithOutput sets the log destination.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.output = w
	}
}

// ParseLevel converts a level name to a slog.Level. Unknown names map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// New creates a structured logger tagged with the application name and version.
func New(name, version string, opts ...Option) *slog.Logger {
	o := &options{output: os.Stderr}
	for _, opt := range opts {
		opt(o)
	}

	level := ParseLevel(os.Getenv(EnvLogLevel))
	if o.level != nil {
		level = *o.level
	}

	handlerOpts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var h slog.Handler
	if o.json {
		h = slog.NewJSONHandler(o.output, handlerOpts)
	} else {
		h = slog.NewTextHandler(o.output, handlerOpts)
	}

	return slog.New(h).With("name", name, "version", version)
}

// SetDefaultStructuredLogger installs New(name, version, opts...) as the
// slog default.
func SetDefaultStructuredLogger(name, version string, opts ...Option) {
	slog.SetDefault(New(name, version, opts...))
}
