package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Legacy.Path == "" {
		t.Error("expected default legacy path to be set")
	}

	if config.Migration.WritesPerSecond != 0 {
		t.Errorf("expected throttling disabled by default, got %d", config.Migration.WritesPerSecond)
	}

	if len(config.Migration.RollbackTables) == 0 {
		t.Error("expected default rollback tables to be set")
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("valid file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")

		content := `
[legacy]
path = "old.db"
max_open_conns = 2

[target]
dir = "docs"
in_memory = true

[migration]
writes_per_second = 100
manifest_path = "run.json"
rollback_tables = ["boards", "tasks"]
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Legacy.Path != "old.db" {
			t.Errorf("expected legacy path 'old.db', got %s", config.Legacy.Path)
		}
		if !config.Target.InMemory {
			t.Error("expected in_memory to be true")
		}
		if config.Migration.WritesPerSecond != 100 {
			t.Errorf("expected 100 writes per second, got %d", config.Migration.WritesPerSecond)
		}
		if len(config.Migration.RollbackTables) != 2 {
			t.Errorf("expected 2 rollback tables, got %d", len(config.Migration.RollbackTables))
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		if err := os.WriteFile(path, []byte("not [valid toml"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if _, err := LoadConfig(path); err == nil {
			t.Error("expected error for malformed config file")
		}
	})
}

func TestCreateConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := CreateConfigFile(path); err != nil {
		t.Fatalf("failed to create config file: %v", err)
	}

	if _, err := LoadConfig(path); err != nil {
		t.Errorf("created config file should parse: %v", err)
	}

	if err := CreateConfigFile(path); err == nil {
		t.Error("expected error when config file already exists")
	}
}
