package adapter

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsNotConfigured(t *testing.T) {
	cfg := DefaultConfig()

	// A fresh install has no backend yet; the setup flow must run.
	assert.False(t, cfg.IsConfigured())

	cfg.Server.BaseURL = "http://localhost:8080/api"
	assert.True(t, cfg.IsConfigured())
}

func TestDefaultConfigDefaults(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 10, cfg.UI.PageSize)
	assert.Equal(t, "/", cfg.UI.DefaultRoute)
	assert.Equal(t, 6, cfg.Server.RecommendedLimit)
	assert.Greater(t, cfg.Server.UploadTimeout, cfg.Server.Timeout)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"Warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{" info ", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLogLevel(tt.in), "level %q", tt.in)
	}
}

func TestSetupLoggerWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "cinegrid.log")

	logger, err := SetupLogger(&LoggingConfig{File: path, Level: "debug"})
	require.NoError(t, err)

	logger.Info("hello", "k", "v")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestExpandHomeLeavesPlainPaths(t *testing.T) {
	got, err := expandHome("/var/log/cinegrid.log")
	require.NoError(t, err)
	assert.Equal(t, "/var/log/cinegrid.log", got)
}
