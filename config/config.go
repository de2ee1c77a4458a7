// Package config handles kiln.toml configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents a kiln.toml file.
type Config struct {
	Runtime Runtime `toml:"runtime"`
	Bridge  Bridge  `toml:"bridge"`

	// Dir is the directory containing the kiln.toml file (set at load time).
	Dir string `toml:"-"`
}

// Runtime tunes container allocation.
type Runtime struct {
	ArrayCapacity  int `toml:"array-capacity"`
	BytesCapacity  int `toml:"bytes-capacity"`
	StringCapacity int `toml:"string-capacity"`
	ReleaseStack   int `toml:"release-stack"`
}

// Bridge configures the host bridge.
type Bridge struct {
	StorePath string `toml:"store-path"`
	Verbosity int    `toml:"verbosity"`
}

// Default returns a config with every field at its default.
func Default() *Config {
	return &Config{
		Runtime: Runtime{
			ArrayCapacity:  4,
			BytesCapacity:  8,
			StringCapacity: 16,
			ReleaseStack:   64,
		},
	}
}

// Load parses a kiln.toml file from the given directory.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, "kiln.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c := Default()
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	c.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	if c.Runtime.ArrayCapacity < 1 || c.Runtime.BytesCapacity < 1 || c.Runtime.StringCapacity < 1 {
		return nil, fmt.Errorf("%s: capacities must be positive", path)
	}
	if c.Runtime.ReleaseStack < 1 {
		return nil, fmt.Errorf("%s: release-stack must be positive", path)
	}

	return c, nil
}

// FindAndLoad walks up from startDir to find a kiln.toml file, then loads
// and returns it. Returns nil if no config file is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, "kiln.toml")
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// StoreFile returns the absolute path of the configured blob store, or ""
// when no store is configured.
func (c *Config) StoreFile() string {
	if c.Bridge.StorePath == "" {
		return ""
	}
	if filepath.IsAbs(c.Bridge.StorePath) {
		return c.Bridge.StorePath
	}
	return filepath.Join(c.Dir, c.Bridge.StorePath)
}
