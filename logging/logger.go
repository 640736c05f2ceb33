// Package logging builds the zap logger used across the service.
package logging

import (
	"go.uber.org/zap"
)

// Config holds logging configuration
type Config struct {
	Level       string
	Format      string // "json" or "console"
	Development bool
}

// New creates a structured logger. An unknown level falls back to info.
func New(config Config) (*zap.Logger, error) {
	var zapConfig zap.Config

	if config.Development {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(config.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zapConfig.Level = level

	if config.Format == "console" {
		zapConfig.Encoding = "console"
	} else {
		zapConfig.Encoding = "json"
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("service", "wingsweb")), nil
}

// NewDefault creates a logger with sensible defaults, never failing.
func NewDefault() *zap.Logger {
	logger, err := New(Config{Level: "info", Format: "json"})
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
