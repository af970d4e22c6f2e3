// Package logger builds the process-wide zap logger.
package logger

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvLevel names the environment variable holding the log level.
const EnvLevel = "RESTWATCH_LOG"

// Options controls where log lines go.
type Options struct {
	// Level is a zap level name. Empty means EnvLevel, then "info".
	Level string
	// File switches to JSON lines appended to this path. Warnings and above are
	// still duplicated to stderr.
	File string
}

// New builds a sugared logger from options.
func New(options Options) (*zap.SugaredLogger, error) {
	level, err := resolveLevel(options.Level)
	if err != nil {
		return nil, err
	}

	console := zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleEncoderConfig()),
		zapcore.Lock(os.Stderr),
		level,
	)

	if options.File == "" {
		return zap.New(console).Sugar(), nil
	}

	if err := os.MkdirAll(filepath.Dir(options.File), 0o755); err != nil {
		return nil, errors.Wrap(err, "create log directory")
	}
	file, err := os.OpenFile(options.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "open log file %s", options.File)
	}

	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		zapcore.AddSync(file),
		level,
	)
	warnings := zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleEncoderConfig()),
		zapcore.Lock(os.Stderr),
		zap.LevelEnablerFunc(func(l zapcore.Level) bool {
			return l >= zapcore.WarnLevel && level.Enabled(l)
		}),
	)
	return zap.New(zapcore.NewTee(fileCore, warnings)).Sugar(), nil
}

func resolveLevel(name string) (zapcore.Level, error) {
	if name == "" {
		name = os.Getenv(EnvLevel)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return zapcore.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return zapcore.InfoLevel, errors.WithHint(
			errors.Wrapf(err, "invalid log level %q", name),
			"use one of debug, info, warn, error",
		)
	}
	return level, nil
}

func consoleEncoderConfig() zapcore.EncoderConfig {
	config := zap.NewDevelopmentEncoderConfig()
	config.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	config.EncodeLevel = zapcore.CapitalLevelEncoder
	if colorTerminal(os.Stderr) {
		config.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	return config
}

// colorTerminal reports whether f is a terminal that renders ANSI colors.
func colorTerminal(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
