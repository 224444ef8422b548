// Package config loads workman.yaml, the project-level configuration that
// feeds the module resolver: the ordered list of standard-library roots and
// the name of the prelude module visited first during a build.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPreludeModule is used when workman.yaml omits `prelude`.
const DefaultPreludeModule = "std/prelude"

// Config is the parsed form of workman.yaml.
type Config struct {
	// StdRoots are directories searched in order for `std/X` specifiers.
	StdRoots []string `yaml:"stdRoots"`

	// Prelude is the module identifier visited first during a build, ahead
	// of the entry module, so its infix/prefix declarations and bindings
	// are in scope everywhere. Empty disables prelude auto-loading.
	Prelude string `yaml:"prelude"`
}

// Default returns the configuration used when no workman.yaml is present.
func Default() *Config {
	return &Config{
		StdRoots: []string{"std"},
		Prelude:  DefaultPreludeModule,
	}
}

// Load reads and parses workman.yaml at path, filling in defaults for any
// field the file omits. A missing file is not an error: Load returns
// Default().
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if len(cfg.StdRoots) == 0 {
		cfg.StdRoots = Default().StdRoots
	}
	return cfg, nil
}
