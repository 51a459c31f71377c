package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ServiceName is stamped on every log line.
const ServiceName = "amp-report"

// Logger wraps zerolog.Logger with map-based structured fields.
type Logger struct {
	zlog zerolog.Logger
}

// Options configures a Logger. Zero values fall back to environment defaults.
type Options struct {
	Output io.Writer
	Env    string
	// Level is a zerolog level name ("debug", "info", ...). Empty means the
	// environment default: debug in development, info elsewhere.
	Level string
}

// New creates a Logger for the given environment.
// Development gets colored console output, every other environment JSON.
func New(env string) *Logger {
	return NewWithOptions(Options{Env: env})
}

// NewWithOptions creates a Logger from explicit options.
func NewWithOptions(opts Options) *Logger {
	output := opts.Output
	if output == nil {
		output = os.Stdout
	}
	if opts.Env == "development" {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339,
		}
	}

	zerolog.TimeFieldFormat = time.RFC3339

	defaultLevel := zerolog.InfoLevel
	if opts.Env == "development" {
		defaultLevel = zerolog.DebugLevel
	}

	zlog := zerolog.New(output).
		Level(ParseLevel(opts.Level, defaultLevel)).
		With().
		Timestamp().
		Str("service", ServiceName).
		Logger()

	return &Logger{zlog: zlog}
}

// ParseLevel converts a level name to a zerolog level, returning fallback
// for empty or unknown names.
func ParseLevel(name string, fallback zerolog.Level) zerolog.Level {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return fallback
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		return fallback
	}
	return level
}

func emit(event *zerolog.Event, msg string, fields map[string]interface{}) {
	for key, value := range fields {
		event = event.Interface(key, value)
	}
	event.Msg(msg)
}

// Debug logs a debug message with optional fields.
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	emit(l.zlog.Debug(), msg, fields)
}

// Info logs an info message with optional fields.
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	emit(l.zlog.Info(), msg, fields)
}

// Warn logs a warning message with optional fields.
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	emit(l.zlog.Warn(), msg, fields)
}

// Error logs an error message with an error and optional fields.
func (l *Logger) Error(msg string, err error, fields map[string]interface{}) {
	emit(l.zlog.Error().Err(err), msg, fields)
}

// Fatal logs a fatal message and exits the application.
func (l *Logger) Fatal(msg string, err error, fields map[string]interface{}) {
	emit(l.zlog.Fatal().Err(err), msg, fields)
}

// With creates a child logger with additional context fields.
func (l *Logger) With(fields map[string]interface{}) *Logger {
	ctx := l.zlog.With()
	for key, value := range fields {
		ctx = ctx.Interface(key, value)
	}
	return &Logger{zlog: ctx.Logger()}
}

// Named creates a child logger tagged with a component name, e.g. "recommendations".
func (l *Logger) Named(component string) *Logger {
	return &Logger{zlog: l.zlog.With().Str("component", component).Logger()}
}

// WithRequestID creates a child logger with a request ID field.
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		zlog: l.zlog.With().Str("request_id", requestID).Logger(),
	}
}

// GetZerolog returns the underlying zerolog.Logger.
func (l *Logger) GetZerolog() *zerolog.Logger {
	return &l.zlog
}
