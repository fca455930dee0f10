package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/IvanBrykalov/lrucache/internal/logging"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// lumberjack starts millRun once and never stops it.
		goleak.IgnoreTopFunction("gopkg.in/natefinch/lumberjack%2ev2.(*Logger).millRun"),
	)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"Error", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := logging.ParseLevel(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := logging.ParseLevel("loud")
	require.ErrorIs(t, err, logging.ErrUnknownLevel)
}

func TestNew_JSONToFallback(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := logging.New(logging.Config{Level: "warn", Format: "json"}, &buf)
	require.NoError(t, err)
	defer closer.Close()

	logger.Info("dropped")
	logger.Warn("kept", slog.Int("n", 1))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, float64(1), rec["n"])
}

func TestNew_TextDefault(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := logging.New(logging.Config{}, &buf)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestNew_UnknownFormat(t *testing.T) {
	_, _, err := logging.New(logging.Config{Format: "xml"}, &bytes.Buffer{})
	require.ErrorIs(t, err, logging.ErrUnknownFormat)
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lru.log")
	logger, closer, err := logging.New(logging.Config{File: path, MaxSizeMB: 1}, nil)
	require.NoError(t, err)

	logger.Info("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=\"to file\"")
}
