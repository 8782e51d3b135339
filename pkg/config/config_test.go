package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, cfg Config) (path string) {
	t.Helper()

	path = filepath.Join(t.TempDir(), "config.json")

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal test config: %v", err)
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	return path
}

func TestLoad(t *testing.T) {
	testConfig := Default()
	testConfig.MaxSkills = 25
	testConfig.Defaults.OutputDir = "./test-output"
	testConfig.Batch.Concurrency = 8

	cfg, err := Load(writeConfig(t, testConfig))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.MaxSkills != 25 {
		t.Errorf("Expected max skills 25, got %d", cfg.MaxSkills)
	}

	if cfg.Defaults.OutputDir != "./test-output" {
		t.Errorf("Expected output dir ./test-output, got %s", cfg.Defaults.OutputDir)
	}

	if cfg.Batch.Concurrency != 8 {
		t.Errorf("Expected concurrency 8, got %d", cfg.Batch.Concurrency)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(path, []byte(`{"max_skills": 10}`), 0600)
	if err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.MaxSkills != 10 {
		t.Errorf("Expected max skills 10, got %d", cfg.MaxSkills)
	}

	if cfg.MinTextLength != Default().MinTextLength {
		t.Errorf("Expected default min text length, got %d", cfg.MinTextLength)
	}
}

func TestLoadNonexistent(t *testing.T) {
	_, err := Load("/nonexistent/path/config.json")
	if err == nil {
		t.Error("Expected error loading nonexistent config, got nil")
	}
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Expected built-in defaults, got %v", err)
	}

	if cfg.Batch.Concurrency != Default().Batch.Concurrency {
		t.Errorf("Expected default concurrency, got %d", cfg.Batch.Concurrency)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvMaxSkills, "7")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvOutputDir, "/tmp/parsed")

	cfg, err := Load(writeConfig(t, Default()))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.MaxSkills != 7 {
		t.Errorf("Expected max skills 7, got %d", cfg.MaxSkills)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level debug, got %s", cfg.LogLevel)
	}

	if cfg.Defaults.OutputDir != "/tmp/parsed" {
		t.Errorf("Expected output dir /tmp/parsed, got %s", cfg.Defaults.OutputDir)
	}
}

func TestLoadEnvInvalidNumber(t *testing.T) {
	t.Setenv(EnvConcurrency, "many")

	_, err := Load(writeConfig(t, Default()))
	if err == nil || !strings.Contains(err.Error(), EnvConcurrency) {
		t.Errorf("Expected error naming %s, got %v", EnvConcurrency, err)
	}
}

func TestValidate(t *testing.T) {
	dictionary := filepath.Join(t.TempDir(), "extra.yaml")
	err := os.WriteFile(dictionary, []byte("version: test\n"), 0600)
	if err != nil {
		t.Fatalf("Failed to write dictionary: %v", err)
	}

	tests := []struct {
		name      string
		mutate    func(*Config)
		wantError bool
	}{
		{
			name:      "valid config",
			mutate:    func(*Config) {},
			wantError: false,
		},
		{
			name:      "existing dictionary",
			mutate:    func(c *Config) { c.DictionaryPath = dictionary },
			wantError: false,
		},
		{
			name:      "nonexistent dictionary",
			mutate:    func(c *Config) { c.DictionaryPath = "/nonexistent/skills.yaml" },
			wantError: true,
		},
		{
			name:      "zero max skills",
			mutate:    func(c *Config) { c.MaxSkills = 0 },
			wantError: true,
		},
		{
			name:      "unknown format",
			mutate:    func(c *Config) { c.Defaults.Format = "pdf" },
			wantError: true,
		},
		{
			name:      "unknown log level",
			mutate:    func(c *Config) { c.LogLevel = "loud" },
			wantError: true,
		},
		{
			name:      "missing output dir",
			mutate:    func(c *Config) { c.Defaults.OutputDir = "" },
			wantError: true,
		},
		{
			name:      "too much concurrency",
			mutate:    func(c *Config) { c.Batch.Concurrency = 1000 },
			wantError: true,
		},
		{
			name: "empty format and level fall back",
			mutate: func(c *Config) {
				c.Defaults.Format = ""
				c.LogLevel = ""
			},
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestInitConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.json")

	err := InitConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to init config: %v", err)
	}

	// The starter file must load cleanly.
	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load initialized config: %v", err)
	}

	if cfg.Defaults.OutputDir == "" {
		t.Error("Default output dir was not set")
	}

	if cfg.Batch.MetricsFile != filepath.Join(tmpDir, "nested", "batch.prom") {
		t.Errorf("Unexpected metrics file %s", cfg.Batch.MetricsFile)
	}
}

func TestInitConfigAlreadyExists(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")

	// Create file first.
	err := os.WriteFile(configPath, []byte("{}"), 0600)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	// Try to init - should fail.
	err = InitConfig(configPath)
	if err == nil {
		t.Error("Expected error when config already exists, got nil")
	}
}
