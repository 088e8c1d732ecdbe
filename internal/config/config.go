package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"dsaudit/internal/domain"
)

const (
	DefaultConfigPath = "~/.config/dsaudit/libraries.yaml"
	appName           = "dsaudit"
)

// ConfigPath returns the library mapping path from DSAUDIT_CONFIG env var,
// falling back to DefaultConfigPath.
func ConfigPath() string {
	if env := os.Getenv("DSAUDIT_CONFIG"); env != "" {
		return env
	}
	return DefaultConfigPath
}

// DatabasePath returns the ignore store path from DSAUDIT_DB env var,
// falling back to $XDG_DATA_HOME/dsaudit/ignores.db.
func DatabasePath() string {
	if env := os.Getenv("DSAUDIT_DB"); env != "" {
		return env
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, appName, "ignores.db")
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// Library maps component and collection keys to one library name
type Library struct {
	Name           string   `yaml:"name"`
	Enabled        bool     `yaml:"enabled"`
	ComponentKeys  []string `yaml:"component_keys"`
	CollectionKeys []string `yaml:"collection_keys"`
}

// Config is the persisted library mapping and scoring policy
type Config struct {
	Libraries []Library      `yaml:"libraries"`
	Weights   domain.Weights `yaml:"weights"`

	// BatchSize overrides the number of instances between progress
	// checkpoints (0 = automatic)
	BatchSize int `yaml:"batch_size"`
}

// ConfigError represents an invalid configuration file
type ConfigError struct {
	Path   string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return "invalid config: " + e.Reason
	}
	return fmt.Sprintf("invalid config %s: %s", e.Path, e.Reason)
}

// Default returns an empty mapping with the default weights
func Default() *Config {
	return &Config{Weights: domain.DefaultWeights}
}

// Load reads and validates the config at path. A missing file yields
// Default().
func Load(path string) (*Config, error) {
	expanded, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(expanded)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) {
			cfgErr.Path = expanded
		}
		return nil, err
	}
	return cfg, nil
}

// Parse decodes and validates YAML config data
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	cfg.Weights = domain.Weights{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &ConfigError{Reason: err.Error()}
	}
	if cfg.Weights == (domain.Weights{}) {
		cfg.Weights = domain.DefaultWeights
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects ambiguous key mappings, unnamed libraries and weights
// that are negative or do not sum to 1.
func (c *Config) Validate() error {
	if c.Weights.Tokens < 0 || c.Weights.Components < 0 {
		return &ConfigError{Reason: "weights must not be negative"}
	}
	if math.Abs(c.Weights.Tokens+c.Weights.Components-1) > 1e-9 {
		return &ConfigError{Reason: fmt.Sprintf("weights must sum to 1, got %.2f + %.2f", c.Weights.Tokens, c.Weights.Components)}
	}
	if c.BatchSize < 0 {
		return &ConfigError{Reason: "batch_size must not be negative"}
	}

	names := make(map[string]bool)
	componentOwner := make(map[string]string)
	collectionOwner := make(map[string]string)
	for _, lib := range c.Libraries {
		name := strings.TrimSpace(lib.Name)
		if name == "" {
			return &ConfigError{Reason: "library without a name"}
		}
		if names[name] {
			return &ConfigError{Reason: fmt.Sprintf("library %q defined twice", name)}
		}
		names[name] = true

		if err := claimKeys(componentOwner, lib.ComponentKeys, name, "component"); err != nil {
			return err
		}
		if err := claimKeys(collectionOwner, lib.CollectionKeys, name, "collection"); err != nil {
			return err
		}
	}
	return nil
}

func claimKeys(owners map[string]string, keys []string, library, what string) error {
	for _, key := range keys {
		if owner, ok := owners[key]; ok && owner != library {
			return &ConfigError{Reason: fmt.Sprintf("%s key %s maps to both %q and %q", what, key, owner, library)}
		}
		owners[key] = library
	}
	return nil
}
