package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWritesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.FileExists(t, path)

	assert.Equal(t, filepath.Join(filepath.Dir(path), "orders"), cfg.Storage.Dir)
	assert.Empty(t, cfg.Remote.URL)
	assert.Equal(t, 15, cfg.Refresh.QuoteSeconds)

	watch := cfg.Panel("watchlist")
	assert.True(t, watch.MultiSelect)
	assert.Equal(t, 30, watch.MaxItems)
	assert.False(t, cfg.Panel("portfolio").MultiSelect)
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Default(filepath.Dir(path))
	cfg.Remote.URL = "https://orders.example.com"
	cfg.Remote.Token = "tok-1"
	cfg.Refresh.QuoteSeconds = 60
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Remote, got.Remote)
	assert.Equal(t, 60*time.Second, got.Refresh.QuoteInterval())
	assert.Equal(t, cfg.Panels, got.Panels)
}

func TestLoadFillsMissingSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_file: /tmp/td.log\n"), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "orders"), cfg.Storage.Dir)
	assert.Contains(t, cfg.Panels, "strategies")
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("panels: [not a map"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestPanelFallback(t *testing.T) {
	cfg := &Config{Panels: map[string]PanelConfig{}}
	p := cfg.Panel("missing")
	assert.Equal(t, "default", p.AnimationPreset)
	assert.True(t, p.PersistOrder)
}

func TestQuoteIntervalDefault(t *testing.T) {
	assert.Equal(t, 15*time.Second, RefreshConfig{}.QuoteInterval())
	assert.Equal(t, 5*time.Second, RefreshConfig{QuoteSeconds: 5}.QuoteInterval())
}
