// Package logging initializes the process-wide structured logger.
//
// The loader is a short-lived batch process, so a single global sugared
// logger is sufficient; packages that need logging receive it explicitly
// from the caller rather than importing this package.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap SugaredLogger. appEnv selects the output format:
// "production" emits JSON, anything else emits human-readable console
// output suitable for interactive runs.
func New(appEnv string, verbose bool) (*zap.SugaredLogger, error) {
	var cfg zap.Config

	if appEnv == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}
	return logger.Sugar(), nil
}

// Nop returns a logger that discards everything. Used by tests and as a
// fallback when a component is handed a nil logger.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
