package utils

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewApplicationLogger builds the console logger used for command diagnostics.
// Entries go to standard error so rendered output on standard output stays
// clean, and each entry carries only its level and message.
func NewApplicationLogger() (*zap.Logger, error) {
	encoderConfiguration := zapcore.EncoderConfig{
		MessageKey:  "message",
		LevelKey:    "level",
		EncodeLevel: zapcore.CapitalLevelEncoder,
	}
	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfiguration),
		zapcore.Lock(os.Stderr),
		zapcore.InfoLevel,
	)
	return zap.New(consoleCore), nil
}
