package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jacksmith/todo/internal/model"
	"gopkg.in/yaml.v3"
)

const (
	// userConfigFile is the name of the user configuration file (sibling to .todo/).
	userConfigFile = ".todoconfig.yaml"

	// Default configuration values
	DefaultDefaultPriority = model.PriorityMedium
	DefaultBackend         = BackendBolt
	DefaultLogLevel        = "warn"
	DefaultConfirmClearAll = true
)

// Config represents user configuration from .todoconfig.yaml.
// This file is user-managed and never written by todo.
type Config struct {
	// DefaultPriority is the priority for `todo add` when --priority is not given.
	DefaultPriority model.Priority `yaml:"default_priority"`

	// Backend selects the snapshot slot: "bolt" or "file".
	Backend string `yaml:"backend"`

	// LogLevel is the minimum zap level written to stderr.
	LogLevel string `yaml:"log_level"`

	// ConfirmClearAll makes `todo clear --all` ask before emptying the list.
	ConfirmClearAll bool `yaml:"confirm_clear_all"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		DefaultPriority: DefaultDefaultPriority,
		Backend:         DefaultBackend,
		LogLevel:        DefaultLogLevel,
		ConfirmClearAll: DefaultConfirmClearAll,
	}
}

// LoadConfig loads .todoconfig.yaml if it exists, otherwise returns defaults.
// Partial config files are merged with defaults.
func (s *Storage) LoadConfig() (*Config, error) {
	data, err := os.ReadFile(s.ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", userConfigFile, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", userConfigFile, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", userConfigFile, err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.DefaultPriority == "" {
		c.DefaultPriority = DefaultDefaultPriority
	}
	p, err := model.ParsePriority(string(c.DefaultPriority))
	if err != nil {
		return fmt.Errorf("default_priority: %w", err)
	}
	c.DefaultPriority = p

	switch c.Backend {
	case "":
		c.Backend = DefaultBackend
	case BackendBolt, BackendFile:
	default:
		return fmt.Errorf("backend %q: must be %s or %s", c.Backend, BackendBolt, BackendFile)
	}

	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	return nil
}

// ConfigPath returns the path to the user config file.
func (s *Storage) ConfigPath() string {
	return filepath.Join(s.root, userConfigFile)
}
