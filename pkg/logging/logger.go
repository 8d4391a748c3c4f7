// Package logging provides structured logging for the simulation and its
// front ends. It wraps Go's standard slog package with run IDs carried in the
// context, error context preservation, and JSON-safe numeric attributes.
package logging

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
)

// LevelEnv names the environment variable that selects the log level.
const LevelEnv = "ROIDS_LOG_LEVEL"

// Logger wraps slog.Logger to provide application-specific logging functionality
// with run ID support.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger instance with JSON output on stderr.
// The log level can be controlled via the ROIDS_LOG_LEVEL environment variable.
// Valid levels: DEBUG, INFO, WARN, ERROR. Defaults to INFO.
func NewLogger() *Logger {
	return NewLoggerWithWriter(os.Stderr, getLogLevelFromEnv())
}

// NewLoggerWithWriter creates a JSON logger writing to w at level.
func NewLoggerWithWriter(w io.Writer, level slog.Level) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: sanitizeAttributes,
	})
	return &Logger{slog.New(handler)}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{slog.New(slog.NewJSONHandler(io.Discard, nil))}
}

// LogWithContext logs a message with automatic run ID extraction from context.
func (l *Logger) LogWithContext(ctx context.Context, level slog.Level, msg string, args ...any) {
	if runID := GetRunID(ctx); runID != "" {
		args = append(args, "run_id", runID)
	}
	l.Log(ctx, level, msg, args...)
}

// Info logs an informational message with context.
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelInfo, msg, args...)
}

// Warn logs a warning message with context.
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelWarn, msg, args...)
}

// Error logs an error message with context and proper error formatting.
func (l *Logger) Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.LogWithContext(ctx, slog.LevelError, msg, args...)
}

// Debug logs a debug message with context.
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	l.LogWithContext(ctx, slog.LevelDebug, msg, args...)
}

type runIDKey struct{}

// WithRunID adds a run ID to the context.
// If no run ID is provided, a new one will be generated.
func WithRunID(ctx context.Context, runID string) context.Context {
	if runID == "" {
		runID = GenerateRunID()
	}
	return context.WithValue(ctx, runIDKey{}, runID)
}

// GetRunID extracts the run ID from the context.
// Returns empty string if no run ID is present.
func GetRunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey{}).(string); ok {
		return id
	}
	return ""
}

// GenerateRunID creates a new random run ID.
func GenerateRunID() string {
	bytes := make([]byte, 8)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// ParseLevel maps a level name to a slog level. Unknown names yield INFO.
func ParseLevel(name string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getLogLevelFromEnv() slog.Level {
	return ParseLevel(os.Getenv(LevelEnv))
}

// sanitizeAttributes renders non-finite floats as strings, since JSON has no
// encoding for NaN or infinity.
func sanitizeAttributes(groups []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindFloat64 {
		return a
	}
	f := a.Value.Float64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return slog.String(a.Key, fmt.Sprint(f))
	}
	return a
}

// WrapError wraps an error with additional context information.
// This preserves the original error while adding descriptive context.
func WrapError(err error, context string, args ...any) error {
	if err == nil {
		return nil
	}
	if len(args) > 0 {
		context = fmt.Sprintf(context, args...)
	}
	return fmt.Errorf("%s: %w", context, err)
}
