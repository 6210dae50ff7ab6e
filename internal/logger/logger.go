// Package logger provides structured logging for the application,
// backed by zap.
package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Logger wraps a zap.Logger so callers can construct it before the
// configuration is known and initialize it afterwards.
type Logger struct {
	// Log is the underlying zap logger. It is a no-op until Init succeeds.
	Log *zap.Logger
}

// New returns a Logger with a no-op backend.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init replaces the no-op backend with a production zap logger at the
// given level ("debug", "info", "warn", "error").
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(strings.ToLower(level))
	if err != nil {
		return err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	log, err := cfg.Build()
	if err != nil {
		return err
	}
	l.Log = log
	return nil
}
