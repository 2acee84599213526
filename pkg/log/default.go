package log

import (
	"context"
	"log/slog"
)

// slogLogger adapts *slog.Logger to the Logger interface.
type slogLogger struct {
	inner *slog.Logger
}

// NewSlogLogger wraps an existing *slog.Logger.
func NewSlogLogger(inner *slog.Logger) Logger {
	return &slogLogger{inner: inner}
}

func (l *slogLogger) Debug(msg string, fields ...any) { l.inner.Debug(msg, fields...) }
func (l *slogLogger) Info(msg string, fields ...any)  { l.inner.Info(msg, fields...) }
func (l *slogLogger) Warn(msg string, fields ...any)  { l.inner.Warn(msg, fields...) }
func (l *slogLogger) Error(msg string, fields ...any) { l.inner.Error(msg, fields...) }

func (l *slogLogger) With(fields ...any) Logger {
	return &slogLogger{inner: l.inner.With(fields...)}
}

func (l *slogLogger) Enabled(ctx context.Context, level Level) bool {
	return l.inner.Enabled(ctx, slog.Level(level))
}

// slogProvider is the package-level LoggerProvider backing GetLogger and
// GetLoggerWithName. It starts out wrapping slog.Default() so the package
// is usable with zero setup; SetupLogger (logger.go) replaces
// slog.Default itself, and callers that want a fully custom provider can
// install one with SetProvider.
type slogProvider struct {
	level Level
}

func (p *slogProvider) GetLogger() Logger {
	return NewSlogLogger(slog.Default())
}

func (p *slogProvider) GetLoggerWithName(name string) Logger {
	return NewSlogLogger(slog.Default()).With(ComponentKey, name)
}

func (p *slogProvider) SetLevel(level Level) {
	p.level = level
}

var defaultProvider LoggerProvider = &slogProvider{}

// SetProvider installs a package-wide LoggerProvider, letting callers (or
// tests) swap in a TestLoggerProvider without touching call sites that use
// GetLogger/GetLoggerWithName.
func SetProvider(p LoggerProvider) {
	defaultProvider = p
}

// GetLogger returns the default logger, as configured by the current
// provider (slog.Default() unless SetProvider/SetupLogger changed it).
func GetLogger() Logger {
	return defaultProvider.GetLogger()
}

// GetLoggerWithName returns a logger tagged with a component name, used to
// correlate log lines across the coalition/sample/regression stages of
// one explanation.
func GetLoggerWithName(name string) Logger {
	return defaultProvider.GetLoggerWithName(name)
}
