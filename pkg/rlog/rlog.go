// Package rlog is the application's logging setup: a single global
// zerolog.Logger, configured once at startup, plus a component logger
// for the roster generator.
package rlog

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	once   sync.Once
	logger zerolog.Logger
)

// Level is a zerolog level alias, re-exported so callers need not
// import zerolog directly.
type Level = zerolog.Level

const (
	DebugLevel = zerolog.DebugLevel
	InfoLevel  = zerolog.InfoLevel
	WarnLevel  = zerolog.WarnLevel
	ErrorLevel = zerolog.ErrorLevel
	FatalLevel = zerolog.FatalLevel
)

// Config controls the global logger's level, encoding, and sink.
type Config struct {
	Level      string `yaml:"level" json:"level"`
	Format     string `yaml:"format" json:"format"` // json/console
	Output     string `yaml:"output" json:"output"` // stdout/stderr/file
	FilePath   string `yaml:"file_path,omitempty" json:"file_path,omitempty"`
	TimeFormat string `yaml:"time_format,omitempty" json:"time_format,omitempty"`
}

// DefaultConfig is a console logger at info level on stdout.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     "console",
		Output:     "stdout",
		TimeFormat: time.RFC3339,
	}
}

// Init configures the global logger. Safe to call multiple times;
// only the first call takes effect.
func Init(cfg Config) {
	once.Do(func() {
		level := parseLevel(cfg.Level)
		zerolog.SetGlobalLevel(level)

		var output io.Writer
		switch cfg.Output {
		case "stderr":
			output = os.Stderr
		case "file":
			if cfg.FilePath != "" {
				f, err := os.OpenFile(cfg.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
				if err == nil {
					output = f
				} else {
					output = os.Stdout
				}
			} else {
				output = os.Stdout
			}
		default:
			output = os.Stdout
		}

		if cfg.Format == "console" {
			output = zerolog.ConsoleWriter{
				Out:        output,
				TimeFormat: cfg.TimeFormat,
			}
		}

		logger = zerolog.New(output).With().Timestamp().Logger()
	})
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// Get returns the global logger, initializing it with defaults on
// first use if Init was never called.
func Get() *zerolog.Logger {
	Init(DefaultConfig()) // no-op once Init has run
	return &logger
}

// WithContext returns a logger enriched with the request id carried
// on ctx, if any.
func WithContext(ctx context.Context) *zerolog.Logger {
	l := Get().With().Logger()
	if reqID, ok := ctx.Value(requestIDKey{}).(string); ok {
		l = l.With().Str("request_id", reqID).Logger()
	}
	return &l
}

type requestIDKey struct{}

// WithRequestID returns a context carrying a request id for WithContext.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func Debug() *zerolog.Event { return Get().Debug() }
func Info() *zerolog.Event  { return Get().Info() }
func Warn() *zerolog.Event  { return Get().Warn() }
func Error() *zerolog.Event { return Get().Error() }
func Fatal() *zerolog.Event { return Get().Fatal() }

// WithError starts an error-level event carrying err.
func WithError(err error) *zerolog.Event {
	return Get().Error().Err(err)
}

// WithField returns a logger with one extra field bound.
func WithField(key string, value interface{}) *zerolog.Logger {
	l := Get().With().Interface(key, value).Logger()
	return &l
}

// WithFields returns a logger with several extra fields bound.
func WithFields(fields map[string]interface{}) *zerolog.Logger {
	ctx := Get().With()
	for k, v := range fields {
		ctx = ctx.Interface(k, v)
	}
	l := ctx.Logger()
	return &l
}

// RosterLogger is the component logger used by the generator driver.
type RosterLogger struct {
	base *zerolog.Logger
}

// NewRosterLogger returns a logger tagged component=roster.
func NewRosterLogger() *RosterLogger {
	l := Get().With().Str("component", "roster").Logger()
	return &RosterLogger{base: &l}
}

// StartGeneration logs the start of a generate run.
func (l *RosterLogger) StartGeneration(serviceName string, employees int, year, month int) {
	l.base.Info().
		Str("service", serviceName).
		Int("employees", employees).
		Int("year", year).
		Int("month", month).
		Msg("starting roster generation")
}

// AttemptScored logs the score of one generator attempt.
func (l *RosterLogger) AttemptScored(attempt int, score float64, kept bool) {
	l.base.Debug().
		Int("attempt", attempt).
		Float64("score", score).
		Bool("kept", kept).
		Msg("attempt scored")
}

// GenerationComplete logs the final outcome of a generate run.
func (l *RosterLogger) GenerationComplete(duration time.Duration, attempts int, bestScore float64) {
	l.base.Info().
		Dur("duration", duration).
		Int("attempts", attempts).
		Float64("best_score", bestScore).
		Msg("roster generation complete")
}
