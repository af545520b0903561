// Package config provides project configuration management.
//
// This package handles reading and writing the optional .forge.yaml
// file that pins per-project installer defaults: the component source
// root, the install location, and the discovery/selection modes.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the project configuration file name.
const FileName = ".forge.yaml"

// Config represents the .forge.yaml file. Every field is optional;
// zero values defer to flags and built-in defaults.
type Config struct {
	// Source is the component source tree root.
	Source string `yaml:"source,omitempty"`

	// Location is the default install location (global or local).
	Location string `yaml:"location,omitempty"`

	// Selector is the default selection mode (prompts or browser).
	Selector string `yaml:"selector,omitempty"`

	// Discovery is the source layout mode (flat or partitioned).
	Discovery string `yaml:"discovery,omitempty"`
}

// Load reads the configuration from dir. A missing file is not an
// error and yields a zero config.
//
// Parameters:
//   - dir: the directory holding .forge.yaml
//
// Returns:
//   - *Config: the loaded (possibly zero) configuration
//   - error: if the file exists but cannot be read or parsed
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &cfg, nil
}

// Save writes the configuration to dir.
//
// Parameters:
//   - dir: the directory to hold .forge.yaml
//   - cfg: the configuration to persist
//
// Returns:
//   - error: if marshalling or writing fails
func Save(dir string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
