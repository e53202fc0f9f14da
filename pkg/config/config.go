// Package config loads the optional sion.yaml configuration file. Flags
// given on the command line override file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "sion.yaml"

// Config mirrors the sion.yaml schema.
type Config struct {
	// Groups are qualifier prefixes used to partition the import list.
	Groups []string `yaml:"groups"`

	// Strategy is one of recompute, modify, remove-unneeded.
	Strategy string `yaml:"strategy"`

	// Expand splits multi-selector imports instead of collapsing.
	Expand bool `yaml:"expand"`

	// Local also organizes imports inside class and function bodies.
	Local bool `yaml:"local"`

	// Wildcards lists qualifiers always rewritten to a wildcard import.
	Wildcards []string `yaml:"wildcards"`

	// CollapseToWildcard collapses long selector lists to a wildcard.
	CollapseToWildcard struct {
		Max     int      `yaml:"max"`
		Exclude []string `yaml:"exclude"`
	} `yaml:"collapse_to_wildcard"`

	// Add lists imports injected before filtering, as "qualifier.Name".
	Add []string `yaml:"add"`

	// CacheSize bounds the usage-analyzer LRU; 0 uses the default.
	CacheSize int `yaml:"cache_size"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{Strategy: "modify"}
}

// Load reads sion.yaml from the given directory (working directory when
// empty), falling back to defaults when the file does not exist.
func Load(dir string) (*Config, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("cannot determine working dir: %w", err)
		}
		dir = wd
	}

	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}
	return cfg, nil
}
