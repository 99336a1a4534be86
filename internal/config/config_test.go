package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vimldn/vimnyc8/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "https://data.cityofnewyork.us/resource", cfg.SocrataBaseURL)
	assert.Equal(t, 12*time.Second, cfg.SourceTimeout)
	assert.Equal(t, 8*time.Second, cfg.PortfolioTimeout)
	assert.Equal(t, "reviews.db", cfg.ReviewsDBPath)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("VIMNYC_ADDR", ":9090")
	t.Setenv("VIMNYC_LOG_LEVEL", "debug")
	t.Setenv("VIMNYC_SOURCE_TIMEOUT", "30s")
	t.Setenv("VIMNYC_SOCRATA_APP_TOKEN", "secret-token")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.SourceTimeout)
	assert.Equal(t, "secret-token", cfg.SocrataAppToken)
	// Untouched settings keep their defaults.
	assert.Equal(t, 8*time.Second, cfg.PortfolioTimeout)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":7070\"\nlog_format: text\n"), 0o600))
	t.Setenv("VIMNYC_CONFIG", path)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestEnvBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":7070\"\n"), 0o600))
	t.Setenv("VIMNYC_CONFIG", path)
	t.Setenv("VIMNYC_ADDR", ":6060")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":6060", cfg.Addr)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("VIMNYC_SOURCE_TIMEOUT", "-1s")
	_, err := config.Load()
	assert.Error(t, err)
}
