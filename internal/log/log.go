// Package log provides the process-wide zap logger used by the commands.
package log

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	baseLogger *zap.Logger
	sugared    *zap.SugaredLogger
)

// Init initializes the package-level logger. Every entry carries a run_id so
// the lines of one invocation can be grouped.
func Init(debug bool) error {
	var zapLogger *zap.Logger
	var err error

	if debug {
		zapLogger, err = zap.NewDevelopment()
	} else {
		zapLogger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %w", err)
	}

	baseLogger = zapLogger.With(zap.String("run_id", uuid.NewString()))
	sugared = baseLogger.Sugar()
	return nil
}

// GetZapLogger returns the base logger. Before Init it returns a no-op logger.
func GetZapLogger() *zap.Logger {
	if baseLogger == nil {
		baseLogger = zap.NewNop()
		sugared = baseLogger.Sugar()
	}
	return baseLogger
}

// GetLogger returns the sugared logger.
func GetLogger() *zap.SugaredLogger {
	if sugared == nil {
		GetZapLogger()
	}
	return sugared
}

// Sync flushes any buffered log entries.
func Sync() {
	if baseLogger != nil {
		_ = baseLogger.Sync()
	}
}
