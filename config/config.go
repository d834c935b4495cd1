// Package config handles the dashboard configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete configuration structure.
type Config struct {
	Storage StorageConfig          `yaml:"storage"`
	Remote  RemoteConfig           `yaml:"remote"`
	Panels  map[string]PanelConfig `yaml:"panels"`
	Refresh RefreshConfig          `yaml:"refresh"`
	LogFile string                 `yaml:"log_file"`
}

// StorageConfig locates the durable order store.
type StorageConfig struct {
	Dir string `yaml:"dir"`
}

// RemoteConfig points at the optional order-sync endpoint. An empty URL
// disables remote sync.
type RemoteConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

// PanelConfig carries per-panel container options.
type PanelConfig struct {
	AnimationPreset string `yaml:"animation_preset"`
	Virtualize      bool   `yaml:"virtualize"`
	MaxItems        int    `yaml:"max_items"`
	PersistOrder    bool   `yaml:"persist_order"`
	MultiSelect     bool   `yaml:"multi_select"`
}

// RefreshConfig controls the quote polling cadence.
type RefreshConfig struct {
	QuoteSeconds int `yaml:"quote_seconds"`
}

func (r RefreshConfig) QuoteInterval() time.Duration {
	if r.QuoteSeconds < 1 {
		return 15 * time.Second
	}
	return time.Duration(r.QuoteSeconds) * time.Second
}

// Dir returns the application config directory, creating it if needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	dir := filepath.Join(home, ".config", "tickerdeck")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}

// Default returns the configuration written on first run.
func Default(baseDir string) *Config {
	panel := PanelConfig{
		AnimationPreset: "default",
		Virtualize:      true,
		PersistOrder:    true,
	}
	watch := panel
	watch.MultiSelect = true
	watch.MaxItems = 30
	return &Config{
		Storage: StorageConfig{Dir: filepath.Join(baseDir, "orders")},
		Panels: map[string]PanelConfig{
			"watchlist":  watch,
			"portfolio":  panel,
			"strategies": panel,
		},
		Refresh: RefreshConfig{QuoteSeconds: 15},
		LogFile: filepath.Join(baseDir, "tickerdeck.log"),
	}
}

// Load reads the config file, writing the default first when it does not
// exist.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default(filepath.Dir(path))
		if err := Save(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Storage.Dir == "" {
		cfg.Storage.Dir = filepath.Join(filepath.Dir(path), "orders")
	}
	if cfg.Panels == nil {
		cfg.Panels = Default(filepath.Dir(path)).Panels
	}
	return &cfg, nil
}

// Save writes the config file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Panel returns the named panel config, falling back to defaults.
func (c *Config) Panel(name string) PanelConfig {
	if p, ok := c.Panels[name]; ok {
		return p
	}
	return PanelConfig{AnimationPreset: "default", PersistOrder: true}
}
