// Package logging builds the zap loggers used by the cookbook generator and CLI.
//
// Two encodings are supported: "console" for humans (the default) and "json"
// for machine consumption. Levels follow zap names (debug, info, warn, error)
// plus "silent", which returns a no-op logger.
package logging

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Sentinel errors for logger construction.
var (
	ErrInvalidLevel  = errors.New("invalid log level")
	ErrInvalidFormat = errors.New("invalid log format")
)

// Supported encodings.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// LevelSilent disables logging entirely.
const LevelSilent = "silent"

// Config selects the level and encoding of a logger.
type Config struct {
	Level  string
	Format string
}

// Validate checks the level and format without building a logger.
func (c Config) Validate() error {
	if _, err := parseLevel(c.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Format) {
	case "", FormatConsole, FormatJSON:
		return nil
	default:
		return fmt.Errorf("%w: %q (valid: %s, %s)", ErrInvalidFormat, c.Format, FormatConsole, FormatJSON)
	}
}

// New creates a logger that writes to w.
func New(cfg Config, w io.Writer) (*zap.Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if strings.EqualFold(cfg.Level, LevelSilent) || w == nil {
		return zap.NewNop(), nil
	}

	level, _ := parseLevel(cfg.Level)

	var encCfg zapcore.EncoderConfig
	if level == zapcore.DebugLevel {
		encCfg = zap.NewDevelopmentEncoderConfig()
	} else {
		encCfg = zap.NewProductionEncoderConfig()
	}
	encCfg.LevelKey = "level"
	encCfg.TimeKey = "time"
	encCfg.MessageKey = "message"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if strings.EqualFold(cfg.Format, FormatJSON) {
		encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
	return zap.New(core), nil
}

func parseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(s) {
	case "":
		return zapcore.InfoLevel, nil
	case LevelSilent:
		return zapcore.FatalLevel, nil
	}
	level, err := zapcore.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	return level, nil
}
