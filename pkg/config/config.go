package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/nikogura/resume-parser/pkg/extract"
	"github.com/nikogura/resume-parser/pkg/normalize"
)

// Environment variables that override file settings.
const (
	EnvMinTextLength  = "RESUME_PARSER_MIN_TEXT_LENGTH"
	EnvMaxSkills      = "RESUME_PARSER_MAX_SKILLS"
	EnvDictionaryPath = "RESUME_PARSER_DICTIONARY"
	EnvLogLevel       = "RESUME_PARSER_LOG_LEVEL"
	EnvOutputDir      = "RESUME_PARSER_OUTPUT_DIR"
	EnvConcurrency    = "RESUME_PARSER_CONCURRENCY"
)

// Config represents the application configuration.
type Config struct {
	MinTextLength  int           `json:"min_text_length" validate:"gte=1"`
	MaxSkills      int           `json:"max_skills" validate:"gte=1,lte=500"`
	DictionaryPath string        `json:"dictionary_path,omitempty"`
	LogLevel       string        `json:"log_level" validate:"oneof=trace debug info warn error"`
	Defaults       DefaultConfig `json:"defaults"`
	Batch          BatchConfig   `json:"batch"`
}

// DefaultConfig holds default values for commands.
type DefaultConfig struct {
	OutputDir string `json:"output_dir" validate:"required"`
	Format    string `json:"format" validate:"oneof=json markdown"`
}

// BatchConfig holds settings for the batch command.
type BatchConfig struct {
	Concurrency int    `json:"concurrency" validate:"gte=1,lte=64"`
	MetricsFile string `json:"metrics_file,omitempty"`
	Workbook    string `json:"workbook,omitempty"`
}

// Default returns the built-in configuration used when no config file exists.
func Default() (cfg Config) {
	cfg = Config{
		MinTextLength: normalize.MinViableLength,
		MaxSkills:     extract.DefaultMaxSkills,
		LogLevel:      "info",
		Defaults: DefaultConfig{
			OutputDir: "./parsed",
			Format:    "json",
		},
		Batch: BatchConfig{
			Concurrency: 4,
		},
	}
	return cfg
}

// DefaultPath returns $HOME/.resume-parser/config.json.
func DefaultPath() (path string, err error) {
	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return path, err
	}
	path = filepath.Join(homeDir, ".resume-parser", "config.json")
	return path, err
}

// Load reads configuration from file with environment variable overrides. An explicit configPath must
// exist; when configPath is empty and the default file is missing, built-in defaults are used.
func Load(configPath string) (cfg Config, err error) {
	cfg = Default()

	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	var data []byte
	data, err = os.ReadFile(path)
	switch {
	case err == nil:
		err = json.Unmarshal(data, &cfg)
		if err != nil {
			err = errors.Wrapf(err, "failed to parse config file: %s", path)
			return cfg, err
		}
	case os.IsNotExist(err) && configPath == "":
		err = nil
	case os.IsNotExist(err):
		err = errors.Errorf("config file not found: %s (run 'resume-parser init' to create)", path)
		return cfg, err
	default:
		err = errors.Wrapf(err, "failed to read config file: %s", path)
		return cfg, err
	}

	err = cfg.applyEnv()
	if err != nil {
		return cfg, err
	}

	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "config validation failed")
		return cfg, err
	}

	return cfg, err
}

func (c *Config) applyEnv() (err error) {
	if v := os.Getenv(EnvDictionaryPath); v != "" {
		c.DictionaryPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.Defaults.OutputDir = v
	}

	ints := []struct {
		key    string
		target *int
	}{
		{EnvMinTextLength, &c.MinTextLength},
		{EnvMaxSkills, &c.MaxSkills},
		{EnvConcurrency, &c.Batch.Concurrency},
	}
	for _, entry := range ints {
		v := os.Getenv(entry.key)
		if v == "" {
			continue
		}
		var n int
		n, err = strconv.Atoi(v)
		if err != nil {
			err = errors.Wrapf(err, "invalid %s", entry.key)
			return err
		}
		*entry.target = n
	}

	return err
}

// Validate checks field constraints and that referenced files exist.
func (c *Config) Validate() (err error) {
	if c.Defaults.Format == "" {
		c.Defaults.Format = "json"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	validate := validator.New()
	err = validate.Struct(c)
	if err != nil {
		err = errors.Wrap(err, "invalid configuration")
		return err
	}

	if c.DictionaryPath != "" {
		_, err = os.Stat(c.DictionaryPath)
		if os.IsNotExist(err) {
			err = errors.Errorf("dictionary file not found: %s", c.DictionaryPath)
			return err
		}
		if err != nil {
			err = errors.Wrapf(err, "failed to stat dictionary file: %s", c.DictionaryPath)
			return err
		}
	}

	return err
}

// InitConfig creates a default configuration file.
func InitConfig(configPath string) (err error) {
	path := configPath
	if path == "" {
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create config directory: %s", dir)
		return err
	}

	_, err = os.Stat(path)
	if err == nil {
		err = errors.Errorf("config file already exists: %s", path)
		return err
	}

	var homeDir string
	homeDir, err = os.UserHomeDir()
	if err != nil {
		err = errors.Wrap(err, "failed to get user home directory")
		return err
	}

	defaultConfig := Default()
	defaultConfig.Defaults.OutputDir = filepath.Join(homeDir, "Documents", "ParsedResumes")
	defaultConfig.Batch.MetricsFile = filepath.Join(dir, "batch.prom")

	var data []byte
	data, err = json.MarshalIndent(defaultConfig, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal default config")
		return err
	}

	err = os.WriteFile(path, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write config file: %s", path)
		return err
	}

	return err
}
