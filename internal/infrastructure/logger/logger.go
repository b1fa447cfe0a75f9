// Package logger provides structured logging using zerolog.
// It supports JSON and console output with configurable log levels.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config holds the logger configuration options.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string

	// Format is the output format (json, console).
	Format string

	// ServiceName is added to every log entry.
	ServiceName string
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		Level:       "info",
		Format:      "json",
		ServiceName: "flight-engine",
	}
}

// Logger wraps zerolog.Logger with engine-specific context helpers.
type Logger struct {
	zerolog.Logger
}

// New creates a Logger writing to stdout.
func New(cfg Config) *Logger {
	return NewWithOutput(cfg, os.Stdout)
}

// NewWithOutput creates a Logger with a custom output writer. Useful for
// capturing log output in tests.
func NewWithOutput(cfg Config, output io.Writer) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var writer io.Writer = output
	if cfg.Format == "console" {
		writer = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	ctx := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.ServiceName)

	return &Logger{Logger: ctx.Logger()}
}

// WithSearchID returns a logger carrying the search identifier.
func (l *Logger) WithSearchID(searchID string) *Logger {
	return &Logger{Logger: l.With().Str("search_id", searchID).Logger()}
}

// WithSource returns a logger carrying a provider source tag.
func (l *Logger) WithSource(source string) *Logger {
	return &Logger{Logger: l.With().Str("source", source).Logger()}
}

// Nop returns a disabled logger that produces no output.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}
