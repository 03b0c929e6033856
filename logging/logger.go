// Package logging provides the run-wide debug logger, which reports what the harness is
// doing as it happens rather than per test.
package logging

import (
	"github.com/jsontools/npp-ui-tests/framework"

	"go.uber.org/zap"
)

type zapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger adapts a zap logger to framework.Logger. Messages are logged at debug level.
func NewZapLogger(logger *zap.Logger) framework.Logger {
	return zapLogger{sugar: logger.Sugar()}
}

func (l zapLogger) Printf(message string, args ...interface{}) {
	l.sugar.Debugf(message, args...)
}

// NewDebugLogger returns a zap development logger if enabled is true, or a logger that
// discards everything. The returned function flushes the logger.
func NewDebugLogger(enabled bool) (framework.Logger, func(), error) {
	if !enabled {
		return framework.NullLogger(), func() {}, nil
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, nil, err
	}
	return NewZapLogger(logger), func() { _ = logger.Sync() }, nil
}
