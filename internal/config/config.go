// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
	Grid    GridConfig    `toml:"grid"`
	Harvest HarvestConfig `toml:"harvest"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// GridConfig holds slot-grid rendering settings.
type GridConfig struct {
	SlotHeight int `toml:"slot_height"` // rendered rows per 15-minute slot
}

// HarvestConfig holds Harvest Forecast credentials. Leave empty to
// disable the harvest integration.
type HarvestConfig struct {
	BaseURL     string `toml:"base_url"`
	AccountID   string `toml:"account_id"`
	AccessToken string `toml:"access_token"`
	UserID      string `toml:"user_id"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "frappe",
		},
		Grid: GridConfig{
			SlotHeight: 1,
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "dayplan.db"
	}
	return filepath.Join(home, ".local", "share", "dayplan", "dayplan.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "dayplan", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DAYPLAN_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("DAYPLAN_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}

	// Harvest credentials usually come from the environment (or a .env
	// file loaded before this runs) rather than the config file.
	if v := os.Getenv("HARVEST_FORECAST_API_URL"); v != "" {
		cfg.Harvest.BaseURL = v
	}
	if v := os.Getenv("HARVEST_FORECAST_ACCOUNT_ID"); v != "" {
		cfg.Harvest.AccountID = v
	}
	if v := os.Getenv("HARVEST_FORECAST_ACCESS_TOKEN"); v != "" {
		cfg.Harvest.AccessToken = v
	}
	if v := os.Getenv("HARVEST_FORECAST_USER_ID"); v != "" {
		cfg.Harvest.UserID = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// HasHarvest returns true if enough credentials are present to build a
// Forecast client.
func (c *Config) HasHarvest() bool {
	return c.Harvest.AccountID != "" && c.Harvest.AccessToken != "" && c.Harvest.UserID != ""
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if c.Grid.SlotHeight < 1 {
		return errors.New("slot_height must be at least 1")
	}
	switch c.UI.Theme {
	case "mocha", "macchiato", "frappe", "latte":
	default:
		return fmt.Errorf("unknown theme: %s", c.UI.Theme)
	}
	return nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
