// Package logger builds the zap logger used across crat.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	EnvLevel  = "CRAT_LOG_LEVEL"
	EnvFormat = "CRAT_LOG_FORMAT"

	// DefaultLevel keeps the interactive console free of engine chatter.
	DefaultLevel = "warn"
)

// FromEnv returns the level and format configured in the environment,
// falling back to DefaultLevel and the console format.
func FromEnv() (level, format string) {
	level = os.Getenv(EnvLevel)
	if level == "" {
		level = DefaultLevel
	}
	return level, os.Getenv(EnvFormat)
}

// New builds a logger. A "json" format selects the production encoder,
// anything else the coloured development console. Unknown levels fall
// back to info.
func New(level, format string) (*zap.Logger, error) {
	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return cfg.Build()
}
