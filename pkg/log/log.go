// Package log defines the narrow logging interface the client writes to and
// a zap-backed implementation of it.
package log

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logging surface used by the relay client.
type Logger interface {
	Debugw(msg string, keysAndValues ...any)
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
}

// ZapLogger adapts a zap sugared logger to the Logger interface.
type ZapLogger struct {
	*zap.SugaredLogger
}

var _ Logger = (*ZapLogger)(nil)

const timeFormat = "15:04:05.000 02/01/2006 -07:00"

// NewZapLogger builds a console logger at the given level, optionally with
// colourised level names.
func NewZapLogger(level zapcore.Level, colour bool) (*ZapLogger, error) {
	config := zap.NewProductionConfig()
	config.Sampling = nil
	config.Encoding = "console"
	config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if colour {
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	config.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(timeFormat)
	config.Level.SetLevel(level)

	logger, err := config.Build(zap.AddStacktrace(zapcore.FatalLevel))
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}
	return &ZapLogger{logger.Sugar()}, nil
}

// NewNopLogger returns a logger that discards everything. It is the default
// for clients constructed without WithLogger.
func NewNopLogger() *ZapLogger {
	return &ZapLogger{zap.NewNop().Sugar()}
}
