package log

import (
	"context"
	"log/slog"
	"os"
)

// DefaultContextProvider returns the default context used by context-unaware
// logging functions.
var DefaultContextProvider = context.TODO

// defaultLog backs the package-level logging functions.
var defaultLog = Make(os.Stderr)

// Config updates the default logger with the given options.
func Config(opts ...Option) {
	defaultLog = defaultLog.Wrap(opts...)
}

// Default returns the current default logger.
func Default() Logger {
	return defaultLog
}

// TraceContext logs a message at Trace level using the default logger with the
// provided context.
func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.TraceContext(ctx, msg, attrs...)
}

// Trace logs a message at Trace level using the default logger.
func Trace(msg string, attrs ...slog.Attr) {
	TraceContext(DefaultContextProvider(), msg, attrs...)
}

// DebugContext logs a message at Debug level using the default logger with the
// provided context.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.DebugContext(ctx, msg, attrs...)
}

// Debug logs a message at Debug level using the default logger.
func Debug(msg string, attrs ...slog.Attr) {
	DebugContext(DefaultContextProvider(), msg, attrs...)
}

// InfoContext logs a message at Info level using the default logger with the
// provided context.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.InfoContext(ctx, msg, attrs...)
}

// Info logs a message at Info level using the default logger.
func Info(msg string, attrs ...slog.Attr) {
	InfoContext(DefaultContextProvider(), msg, attrs...)
}

// WarnContext logs a message at Warn level using the default logger with the
// provided context.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.WarnContext(ctx, msg, attrs...)
}

// Warn logs a message at Warn level using the default logger.
func Warn(msg string, attrs ...slog.Attr) {
	WarnContext(DefaultContextProvider(), msg, attrs...)
}

// ErrorContext logs a message at Error level using the default logger with the
// provided context.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.ErrorContext(ctx, msg, attrs...)
}

// Error logs a message at Error level using the default logger.
func Error(msg string, attrs ...slog.Attr) {
	ErrorContext(DefaultContextProvider(), msg, attrs...)
}

// With returns a new [Logger] that includes the given attributes in each log
// message using the default logger.
func With(attrs ...slog.Attr) Logger {
	return defaultLog.With(attrs...)
}
