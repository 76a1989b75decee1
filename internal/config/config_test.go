package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 100, cfg.ForestTrees)
	assert.Equal(t, int64(42), cfg.ForestSeed)
	assert.Empty(t, cfg.InsightURL)
	assert.Equal(t, 3, cfg.InsightMaxRetries)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	t.Setenv("ANALYTICS_ADDR", ":9999")
	t.Setenv("ANALYTICS_LOG_LEVEL", "debug")
	t.Setenv("ANALYTICS_INSIGHT_URL", "https://insight.example.com/v1")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "https://insight.example.com/v1", cfg.InsightURL)
}

func TestLoadEnvSplitsListValues(t *testing.T) {
	t.Setenv("ANALYTICS_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("ANALYTICS_ADDR", ":9999")

	fs := Flags()
	require.NoError(t, fs.Parse([]string{"--addr", ":7070", "--forest-trees", "25"}))

	cfg, err := Load(fs)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, 25, cfg.ForestTrees)
	// Unset flags do not clobber env or defaults.
	assert.Equal(t, "info", cfg.LogLevel)
}
