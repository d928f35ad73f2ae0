// Package logger holds the process-wide structured logger.
package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the global logger instance.
var Log = logrus.New()

// Config controls level, format and optional file rotation.
type Config struct {
	Level      string `json:"level"`  // debug, info, warn, error
	Format     string `json:"format"` // json or text
	FilePath   string `json:"file_path"`
	MaxSize    int    `json:"max_size"` // megabytes
	MaxBackups int    `json:"max_backups"`
	MaxAge     int    `json:"max_age"` // days
	Compress   bool   `json:"compress"`
}

// Init configures Log. Output always goes to stderr so command output on
// stdout stays clean; a file path adds a rotated copy.
func Init(cfg Config) error {
	return Configure(Log, cfg, os.Stderr)
}

// Configure applies cfg to l, writing to base plus the optional file.
func Configure(l *logrus.Logger, cfg Config, base io.Writer) error {
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return err
	}
	l.SetLevel(level)

	switch cfg.Format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if cfg.FilePath != "" {
		rotated := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		l.SetOutput(io.MultiWriter(base, rotated))
	} else {
		l.SetOutput(base)
	}
	return nil
}
