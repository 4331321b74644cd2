package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.UI.Theme != "frappe" {
		t.Errorf("expected theme frappe, got %s", cfg.UI.Theme)
	}
	if cfg.Grid.SlotHeight != 1 {
		t.Errorf("expected slot_height 1, got %d", cfg.Grid.SlotHeight)
	}
	if cfg.Storage.DBPath == "" {
		t.Error("expected a default db_path")
	}
	if cfg.HasHarvest() {
		t.Error("harvest should be disabled by default")
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should return defaults
	if cfg.UI.Theme != "frappe" {
		t.Errorf("expected default theme, got %s", cfg.UI.Theme)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[storage]
db_path = "/tmp/test.db"

[ui]
theme = "latte"

[grid]
slot_height = 2

[harvest]
account_id = "acct-1"
access_token = "token"
user_id = "person-9"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage.DBPath != "/tmp/test.db" {
		t.Errorf("expected db_path /tmp/test.db, got %s", cfg.Storage.DBPath)
	}
	if cfg.UI.Theme != "latte" {
		t.Errorf("expected theme latte, got %s", cfg.UI.Theme)
	}
	if cfg.Grid.SlotHeight != 2 {
		t.Errorf("expected slot_height 2, got %d", cfg.Grid.SlotHeight)
	}
	if !cfg.HasHarvest() {
		t.Error("expected harvest to be configured")
	}
}

func TestLoadFrom_InvalidTheme(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[ui]
theme = "solarized"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadFrom(configPath); err == nil {
		t.Fatal("expected an error for an unknown theme")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DAYPLAN_DB_PATH", "/tmp/env.db")
	t.Setenv("DAYPLAN_UI_THEME", "mocha")
	t.Setenv("HARVEST_FORECAST_ACCOUNT_ID", "acct-env")
	t.Setenv("HARVEST_FORECAST_ACCESS_TOKEN", "tok-env")
	t.Setenv("HARVEST_FORECAST_USER_ID", "user-env")

	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage.DBPath != "/tmp/env.db" {
		t.Errorf("expected env db_path, got %s", cfg.Storage.DBPath)
	}
	if cfg.UI.Theme != "mocha" {
		t.Errorf("expected env theme, got %s", cfg.UI.Theme)
	}
	if !cfg.HasHarvest() {
		t.Error("expected harvest credentials from env")
	}
	if cfg.Harvest.AccountID != "acct-env" {
		t.Errorf("expected env account id, got %s", cfg.Harvest.AccountID)
	}
}

func TestSaveAndReload(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.toml")

	cfg := Default()
	cfg.UI.Theme = "macchiato"
	cfg.Grid.SlotHeight = 3

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	got, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if got.UI.Theme != "macchiato" || got.Grid.SlotHeight != 3 {
		t.Errorf("round-trip mismatch: %+v", got)
	}
}
