// Package logging builds the process-wide zap logger.
package logging

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger for the given level and stage. The prod stage logs
// JSON with ISO8601 timestamps; every other stage logs colored console output.
func New(level, stage string) (*zap.Logger, error) {
	var config zap.Config
	if stage == "prod" {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	config.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// ParseLevel maps a level name to a zap level; empty means info
func ParseLevel(level string) (zapcore.Level, error) {
	if strings.TrimSpace(level) == "" {
		return zapcore.InfoLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// NewCLI returns a minimal console logger for command-line output on stderr
func NewCLI(debug bool) *zap.Logger {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.TimeKey = ""
	config.EncoderConfig.CallerKey = ""
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.DisableStacktrace = true
	if !debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// DebugDump logs a spew dump of v under key. The dump is only built when
// debug logging is enabled.
func DebugDump(logger *zap.Logger, msg, key string, v interface{}, fields ...zap.Field) {
	if logger == nil || !logger.Core().Enabled(zapcore.DebugLevel) {
		return
	}
	logger.Debug(msg, append(fields, zap.String(key, spew.Sdump(v)))...)
}
