// Package logging builds the slog.Logger used by lructl.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	ErrUnknownLevel  = errors.New("logging: unknown level")
	ErrUnknownFormat = errors.New("logging: unknown format")
)

// Config selects level, format and destination. An empty File writes to
// the fallback writer given to New; otherwise File is rotated by size.
type Config struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	File   string `koanf:"file"`

	MaxSizeMB  int  `koanf:"max_size_mb"`
	MaxBackups int  `koanf:"max_backups"`
	MaxAgeDays int  `koanf:"max_age_days"`
	Compress   bool `koanf:"compress"`
}

// ParseLevel accepts debug/info/warn/warning/error, case-insensitive.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}

// New returns a logger for cfg and a Closer for its destination. The
// Closer is a no-op when logging to fallback (nil means os.Stderr).
func New(cfg Config, fallback io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}

	if fallback == nil {
		fallback = os.Stderr
	}
	w := fallback
	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		w, closer = lj, lj
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "", FormatText:
		h = slog.NewTextHandler(w, opts)
	case FormatJSON:
		h = slog.NewJSONHandler(w, opts)
	default:
		_ = closer.Close()
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownFormat, cfg.Format)
	}
	return slog.New(h), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
