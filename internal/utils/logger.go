package utils

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewApplicationLogger builds the console logger skx reports failures through.
// It writes bare messages to standard error so rendered trees and token counts
// on standard output stay machine-consumable.
func NewApplicationLogger() *zap.Logger {
	encoderConfiguration := zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       zapcore.OmitKey,
		TimeKey:        zapcore.OmitKey,
		NameKey:        zapcore.OmitKey,
		CallerKey:      zapcore.OmitKey,
		StacktraceKey:  zapcore.OmitKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	loggerCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfiguration),
		zapcore.Lock(os.Stderr),
		zapcore.InfoLevel,
	)
	return zap.New(loggerCore)
}
