// Package config handles critpath configuration parsing and validation.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Output formats understood by the reporter.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Config represents the critpath.yaml configuration file.
type Config struct {
	Format      string `yaml:"format" mapstructure:"format"`             // table, json
	Color       bool   `yaml:"color" mapstructure:"color"`               // colored terminal output
	Separator   string `yaml:"separator" mapstructure:"separator"`       // critical path joiner
	ShowWaves   bool   `yaml:"show_waves" mapstructure:"show_waves"`     // append waves to the schedule table
	MaxParallel int    `yaml:"max_parallel" mapstructure:"max_parallel"` // concurrent projects when scheduling several files
	CacheSize   int    `yaml:"cache_size" mapstructure:"cache_size"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Format:      FormatTable,
		Color:       true,
		Separator:   " → ",
		ShowWaves:   false,
		MaxParallel: 4,
		CacheSize:   64,
	}
}

// Load reads and parses a critpath.yaml file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = "critpath.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Format {
	case FormatTable, FormatJSON:
	default:
		return fmt.Errorf("invalid format: %s (must be table or json)", c.Format)
	}
	if c.MaxParallel < 1 {
		return fmt.Errorf("max_parallel must be at least 1")
	}
	if c.CacheSize < 1 {
		return fmt.Errorf("cache_size must be at least 1")
	}
	return nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
