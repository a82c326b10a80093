// Package logger builds the zap loggers used by the CLI and the viewer.
package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"qtermzx/errors"
)

var (
	ErrInvalidLevel  = errors.New("invalid log level")
	ErrInvalidFormat = errors.New("invalid log format")
)

// Config selects the level, encoding and destination of log output.
type Config struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	// File receives the log stream instead of stderr when set.
	File string `koanf:"file"`
}

// ParseLevel maps a level name such as "debug" or "WARN" to a zap level.
func ParseLevel(name string) (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return zapcore.InfoLevel, errors.WithHint(
			errors.Wrapf(ErrInvalidLevel, "%q", name),
			"use debug, info, warn or error")
	}
	return level, nil
}

// Validate checks the level and format without opening any output.
func (c Config) Validate() error {
	if _, err := ParseLevel(c.Level); err != nil {
		return err
	}
	switch c.Format {
	case "", "console", "json":
		return nil
	}
	return errors.WithHint(errors.Wrapf(ErrInvalidFormat, "%q", c.Format), "use console or json")
}

func (c Config) sink() string {
	if c.File == "" {
		return "stderr"
	}
	return c.File
}

// New returns a logger for cfg and a function that flushes and closes its
// output.
func New(cfg Config) (*zap.Logger, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	level, _ := ParseLevel(cfg.Level)

	if cfg.Format == "json" {
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(level)
		zc.OutputPaths = []string{cfg.sink()}
		zc.ErrorOutputPaths = []string{"stderr"}
		log, err := zc.Build()
		if err != nil {
			return nil, nil, errors.Wrapf(err, "open log output %s", cfg.sink())
		}
		return log, func() { _ = log.Sync() }, nil
	}

	out, closeOut, err := zap.Open(cfg.sink())
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open log output %s", cfg.sink())
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	if cfg.File == "" {
		enc.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	log := zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(enc), out, level))
	return log, func() {
		_ = log.Sync()
		closeOut()
	}, nil
}

// Nop is a logger that discards everything, with a no-op close.
func Nop() (*zap.Logger, func()) {
	return zap.NewNop(), func() {}
}
