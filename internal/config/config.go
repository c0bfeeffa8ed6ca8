// Package config loads the two host knobs spec §6 names: how many
// optimizer rounds the fixpoint driver is allowed to run, and whether
// the (unimplemented) relational-pushdown compiler backend is
// requested. A small YAML-backed config struct, shrunk to this
// interpreter's much smaller knob set.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the host configuration spec §6 describes.
type Config struct {
	InlinePassCount int  `yaml:"inlinePassCount"`
	Hybrid          bool `yaml:"hybrid"`
}

// Default returns the documented defaults: four optimizer rounds, the
// hybrid pushdown backend off.
func Default() *Config {
	return &Config{InlinePassCount: 4, Hybrid: false}
}

// Load reads a YAML config file at path, applying its values on top of
// Default(). A missing file is not an error: the defaults stand.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}
