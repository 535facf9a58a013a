// Package config loads subdocctl's optional YAML configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the settings subdocctl reads from a config file, overridable
// by command-line flags.
type Config struct {
	// LogLevel is one of zerolog's level names: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
	// JSON makes command output structured JSON instead of plain text.
	JSON bool `yaml:"json"`
	// MaxDepth is read from the file and defaulted, but subdocctl does not
	// apply it: the tokenizer's nesting limit is a fixed constant.
	MaxDepth int `yaml:"max_depth"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{LogLevel: "info", MaxDepth: 2048}
}

// Load reads and parses the YAML config file at path, filling in any field
// Default() would set for a field the file leaves unset.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = Default().MaxDepth
	}
	return cfg, nil
}
