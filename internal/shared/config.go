package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Legacy    LegacyConfig    `toml:"legacy"`
	Target    TargetConfig    `toml:"target"`
	Migration MigrationConfig `toml:"migration"`
}

// LegacyConfig contains connection settings for the legacy relational store.
type LegacyConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// TargetConfig contains settings for the target document store.
type TargetConfig struct {
	Dir      string `toml:"dir"`
	InMemory bool   `toml:"in_memory"`
}

// MigrationConfig contains settings for a migration run.
type MigrationConfig struct {
	// WritesPerSecond throttles target-store inserts. Zero means unlimited.
	WritesPerSecond int `toml:"writes_per_second"`
	// ManifestPath is where the per-run insert manifest is written.
	ManifestPath string `toml:"manifest_path"`
	// RollbackTables is the default table set wiped by the rollback command.
	RollbackTables []string `toml:"rollback_tables"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
