// Package logging builds the zap logger. The selector owns the terminal, so
// logs only go to a file; without one the logger discards everything.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logging configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	File   string // empty disables logging
}

// ParseLevel maps a level name to a zap level. Empty means info.
func ParseLevel(name string) (zapcore.Level, error) {
	var level zapcore.Level
	name = strings.TrimSpace(name)
	if name == "" {
		return zapcore.InfoLevel, nil
	}
	if err := level.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}

// New builds a logger for cfg. The returned logger is never nil; when
// cfg.File is empty it is a no-op logger.
func New(cfg Config) (*zap.Logger, error) {
	if cfg.File == "" {
		return zap.NewNop(), nil
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return zap.NewNop(), err
	}

	var config zap.Config
	switch strings.ToLower(cfg.Format) {
	case "", "json":
		config = zap.NewProductionConfig()
		config.Sampling = nil
	case "console":
		config = zap.NewDevelopmentConfig()
	default:
		return zap.NewNop(), fmt.Errorf("unknown log format %q", cfg.Format)
	}

	if dir := filepath.Dir(cfg.File); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return zap.NewNop(), fmt.Errorf("create log directory: %w", err)
		}
	}

	config.Level = zap.NewAtomicLevelAt(level)
	config.OutputPaths = []string{cfg.File}
	config.ErrorOutputPaths = []string{cfg.File}
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return zap.NewNop(), fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
