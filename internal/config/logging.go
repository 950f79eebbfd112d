package config

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a thin wrapper over zap exposing the printf-style surface
// the transaction service is injected with.
type Logger struct {
	sugar *zap.SugaredLogger
}

// NewLogger creates a logger for the given level. Level "off" discards
// everything.
func NewLogger(level string) (*Logger, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "off", "none", "":
		return NopLogger(), nil
	}

	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}

	return &Logger{sugar: logger.Sugar()}, nil
}

// NopLogger returns a logger that discards all output.
func NopLogger() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar()}
}

// Debug logs at debug level.
func (l *Logger) Debug(format string, args ...any) {
	l.sugar.Debugf(format, args...)
}

// Error logs at error level.
func (l *Logger) Error(format string, args ...any) {
	l.sugar.Errorf(format, args...)
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}
