// Package config loads lructl settings from YAML or JSON.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/IvanBrykalov/lrucache/cache"
	"github.com/IvanBrykalov/lrucache/internal/logging"
)

// Format is a config file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var (
	ErrUnsupportedFormat = errors.New("config: unsupported format")
	ErrParseFailed       = errors.New("config: parse failed")
	ErrInvalid           = errors.New("config: invalid")
)

// Config is the full lructl configuration.
type Config struct {
	Capacity int            `koanf:"capacity"`
	Events   bool           `koanf:"events"`
	Log      logging.Config `koanf:"log"`
	Bench    Bench          `koanf:"bench"`
}

// Bench configures the synthetic workload of `lructl bench`.
type Bench struct {
	Workers     int           `koanf:"workers"`
	Duration    time.Duration `koanf:"duration"`
	UsePct      int           `koanf:"use_pct"`
	Keys        int           `koanf:"keys"`
	Preload     int           `koanf:"preload"`
	Seed        int64         `koanf:"seed"`
	MetricsAddr string        `koanf:"metrics_addr"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Capacity: 1024,
		Log: logging.Config{
			Level:      "info",
			Format:     logging.FormatText,
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
		Bench: Bench{
			Workers:  2 * runtime.GOMAXPROCS(0),
			Duration: 5 * time.Second,
			UsePct:   80,
			Keys:     100_000,
			Seed:     1,
		},
	}
}

// Load reads path, choosing the parser by extension (.yaml, .yml, .json).
func Load(path string) (Config, error) {
	format, err := detectFormat(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return LoadBytes(data, format)
}

// LoadBytes parses data onto Default() and validates the result. Keys
// missing from data keep their defaults.
func LoadBytes(data []byte, format Format) (Config, error) {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting, wrapped in ErrInvalid.
func (c Config) Validate() error {
	if c.Capacity < 1 || uint64(c.Capacity) > cache.MaxCapacity {
		return fmt.Errorf("%w: capacity %d out of range [1, %d]", ErrInvalid, c.Capacity, uint64(cache.MaxCapacity))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalid, c.Log.Format)
	}
	b := c.Bench
	if b.Workers < 1 {
		return fmt.Errorf("%w: bench workers %d < 1", ErrInvalid, b.Workers)
	}
	if b.Duration <= 0 {
		return fmt.Errorf("%w: bench duration %s must be positive", ErrInvalid, b.Duration)
	}
	if b.UsePct < 0 || b.UsePct > 100 {
		return fmt.Errorf("%w: bench use_pct %d not in [0, 100]", ErrInvalid, b.UsePct)
	}
	if b.Keys < 1 {
		return fmt.Errorf("%w: bench keys %d < 1", ErrInvalid, b.Keys)
	}
	if b.Preload < 0 {
		return fmt.Errorf("%w: bench preload %d < 0", ErrInvalid, b.Preload)
	}
	return nil
}

func detectFormat(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, ext)
	}
}
