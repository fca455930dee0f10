package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IvanBrykalov/lrucache/internal/config"
)

func TestDefault_Valid(t *testing.T) {
	require.NoError(t, config.Default().Validate())
}

func TestLoadBytes_YAMLOverridesDefaults(t *testing.T) {
	data := []byte(`
capacity: 5
events: true
log:
  level: debug
  format: json
bench:
  duration: 250ms
  use_pct: 90
`)
	cfg, err := config.LoadBytes(data, config.FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Capacity)
	assert.True(t, cfg.Events)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 250*time.Millisecond, cfg.Bench.Duration)
	assert.Equal(t, 90, cfg.Bench.UsePct)

	def := config.Default()
	assert.Equal(t, def.Bench.Keys, cfg.Bench.Keys)
	assert.Equal(t, def.Bench.Workers, cfg.Bench.Workers)
	assert.Equal(t, def.Log.MaxBackups, cfg.Log.MaxBackups)
}

func TestLoadBytes_JSON(t *testing.T) {
	cfg, err := config.LoadBytes([]byte(`{"capacity": 3, "bench": {"keys": 10}}`), config.FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Capacity)
	assert.Equal(t, 10, cfg.Bench.Keys)
}

func TestLoadBytes_Errors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format config.Format
		want   error
	}{
		{"unsupported format", `capacity = 1`, config.Format("toml"), config.ErrUnsupportedFormat},
		{"malformed yaml", "capacity: [1", config.FormatYAML, config.ErrParseFailed},
		{"malformed json", `{"capacity":`, config.FormatJSON, config.ErrParseFailed},
		{"zero capacity", "capacity: 0", config.FormatYAML, config.ErrInvalid},
		{"bad level", "log: {level: loud}", config.FormatYAML, config.ErrInvalid},
		{"bad format", "log: {format: xml}", config.FormatYAML, config.ErrInvalid},
		{"bad ratio", "bench: {use_pct: 101}", config.FormatYAML, config.ErrInvalid},
		{"no workers", "bench: {workers: 0}", config.FormatYAML, config.ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadBytes([]byte(tt.data), tt.format)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoad_ByExtension(t *testing.T) {
	dir := t.TempDir()

	yml := filepath.Join(dir, "lru.yml")
	require.NoError(t, os.WriteFile(yml, []byte("capacity: 7\n"), 0o600))
	cfg, err := config.Load(yml)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Capacity)

	_, err = config.Load(filepath.Join(dir, "lru.ini"))
	require.ErrorIs(t, err, config.ErrUnsupportedFormat)

	_, err = config.Load(filepath.Join(dir, "missing.json"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
