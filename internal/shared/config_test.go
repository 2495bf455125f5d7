package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Storage.Backend != BackendFile {
			t.Errorf("expected storage backend %s, got %s", BackendFile, config.Storage.Backend)
		}

		if config.Storage.Dir != "Leaderboards" {
			t.Errorf("expected storage dir Leaderboards, got %s", config.Storage.Dir)
		}

		if config.Storage.Manifest != "Leaderboards.json" {
			t.Errorf("expected manifest Leaderboards.json, got %s", config.Storage.Manifest)
		}

		if config.Database.Path != "./rankr.db" {
			t.Errorf("expected database path ./rankr.db, got %s", config.Database.Path)
		}

		if err := config.Validate(); err != nil {
			t.Errorf("default config should be valid: %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.Storage.Dir != DefaultConfig().Storage.Dir {
			t.Errorf("created config storage dir doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[storage]
backend = "sqlite"

[database]
path = "/custom/path.db"
max_open_conns = 4

[log]
level = "debug"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Storage.Backend != BackendSQLite {
			t.Errorf("expected backend sqlite, got %s", config.Storage.Backend)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Database.MaxOpenConns != 4 {
			t.Errorf("expected max_open_conns 4, got %d", config.Database.MaxOpenConns)
		}

		if config.Storage.Dir != "Leaderboards" {
			t.Errorf("expected unset storage dir to keep default, got %s", config.Storage.Dir)
		}

		if config.LogLevel() != log.DebugLevel {
			t.Errorf("expected debug level, got %v", config.LogLevel())
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		if !errors.Is(err, ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		tc := []struct {
			name   string
			mutate func(*Config)
		}{
			{name: "unknown backend", mutate: func(c *Config) { c.Storage.Backend = "redis" }},
			{name: "empty dir", mutate: func(c *Config) { c.Storage.Dir = "" }},
			{name: "empty manifest", mutate: func(c *Config) { c.Storage.Manifest = "" }},
			{name: "empty database path", mutate: func(c *Config) {
				c.Storage.Backend = BackendSQLite
				c.Database.Path = ""
			}},
			{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "loud" }},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				config := DefaultConfig()
				tt.mutate(config)
				if err := config.Validate(); !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			})
		}
	})
}
