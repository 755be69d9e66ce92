// Package logging builds the zap logger used by the hsml command: a
// human-readable console core teed with an optional JSON file core rotated
// by lumberjack.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ErrInvalidLevel is returned for an unparsable level name.
var ErrInvalidLevel = errors.New("logging: invalid level")

// Options configures New.
type Options struct {
	Level      string `yaml:"level"`        // debug, info, warn, error (default info)
	JSON       bool   `yaml:"json"`         // JSON console output instead of the development encoder
	File       string `yaml:"file"`         // rotated JSON log file; empty disables
	MaxSizeMB  int    `yaml:"max_size_mb"`  // default 10
	MaxBackups int    `yaml:"max_backups"`  // default 5
	MaxAgeDays int    `yaml:"max_age_days"` // default 30
	Compress   bool   `yaml:"compress"`

	Console io.Writer `yaml:"-"` // default os.Stderr
}

// DefaultOptions logs info and above to stderr only.
func DefaultOptions() Options {
	return Options{Level: "info", MaxSizeMB: 10, MaxBackups: 5, MaxAgeDays: 30, Compress: true}
}

// Logger is a zap.Logger that owns its rotated file.
type Logger struct {
	*zap.Logger
	rotator *lumberjack.Logger
}

// New builds the logger described by opts.
func New(opts Options) (*Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		lv, err := zapcore.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", opts.Level, ErrInvalidLevel)
		}
		level = lv
	}

	fileEncoderConfig := zap.NewProductionEncoderConfig()
	fileEncoderConfig.TimeKey = "timestamp"
	fileEncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	fileEncoderConfig.MessageKey = "message"
	fileEncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	jsonEncoder := zapcore.NewJSONEncoder(fileEncoderConfig)

	var consoleEncoder zapcore.Encoder
	if opts.JSON {
		consoleEncoder = jsonEncoder
	} else {
		consoleEncoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}
	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.Lock(zapcore.AddSync(console)), level),
	}

	l := &Logger{}
	if opts.File != "" {
		l.rotator = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 10),
			MaxBackups: orDefault(opts.MaxBackups, 5),
			MaxAge:     orDefault(opts.MaxAgeDays, 30),
			Compress:   opts.Compress,
		}
		cores = append(cores, zapcore.NewCore(jsonEncoder, zapcore.AddSync(l.rotator), level))
	}
	l.Logger = zap.New(zapcore.NewTee(cores...), zap.AddCaller())

	return l, nil
}

// Close flushes buffered entries and releases the log file.
func (l *Logger) Close() error {
	_ = l.Sync()
	if l.rotator != nil {
		return l.rotator.Close()
	}

	return nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}

	return v
}
