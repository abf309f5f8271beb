package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	wferrors "github.com/maxkimambo/vetflow/internal/errors"
	"gopkg.in/yaml.v3"
)

// EnvDatabase overrides the database path from the files.
const EnvDatabase = "VETFLOW_DB"

const maxRetryAttempts = 10

// Load reads and merges configuration from global and project paths.
// Order of precedence (highest to lowest): environment, project config,
// global config, defaults. Missing files are not errors.
func Load(globalPath, projectPath string) (*Config, error) {
	cfg := Default()

	if globalPath != "" {
		if err := mergeConfigFile(cfg, globalPath); err != nil {
			return nil, err
		}
	}
	if projectPath != "" {
		if err := mergeConfigFile(cfg, projectPath); err != nil {
			return nil, err
		}
	}

	if db, ok := os.LookupEnv(EnvDatabase); ok {
		cfg.Database.Path = db
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault loads configuration from conventional paths.
// Global: ~/.vetflow/config.yaml
// Project: .vetflow/config.yaml (relative to cwd)
func LoadDefault() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting home directory: %w", err)
	}

	return Load(
		filepath.Join(homeDir, ".vetflow", "config.yaml"),
		filepath.Join(".vetflow", "config.yaml"),
	)
}

// Validate checks values the loader cannot check by type alone.
func (c *Config) Validate() error {
	if c.Retry.Attempts > maxRetryAttempts {
		return configError(fmt.Sprintf("retry.attempts must be at most %d, got %d", maxRetryAttempts, c.Retry.Attempts), nil)
	}
	if c.Retry.Interval < 0 {
		return configError("retry.interval must not be negative", nil)
	}
	if c.Practice.Name == "" {
		return configError("practice.name must be set", nil)
	}
	return nil
}

// mergeConfigFile decodes a YAML file over base. Only keys present in the
// file replace values. Unknown keys are rejected.
func mergeConfigFile(base *Config, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return configError(fmt.Sprintf("reading %s", path), err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(base); err != nil && !errors.Is(err, io.EOF) {
		return configError(fmt.Sprintf("parsing %s", path), err).WithContext("file", path)
	}
	return nil
}

func configError(message string, cause error) *wferrors.WorkflowError {
	return wferrors.NewConfigurationError(wferrors.CodeConfigLoad, message, "Configuration load").
		WithOriginalError(cause).
		WithTroubleshooting("Check the configuration file against the documented keys")
}
