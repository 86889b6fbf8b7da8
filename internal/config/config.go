// Package config loads the interpreter's optional TOML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the interpreter configuration.
type Config struct {
	Store struct {
		// Capacity is the byte size of the single store arena; bindings
		// are 16-bit offsets, so values beyond 65536 are rejected.
		Capacity uint `toml:"capacity"`

		// BigEndian selects big endian encoding for multi-byte fields in
		// the code and dictionary regions.
		BigEndian bool `toml:"big_endian"`

		// TailCalls enables the runtime CALL to TCALL rewrite.
		TailCalls bool `toml:"tail_calls"`
	} `toml:"store"`

	REPL struct {
		Prompt string `toml:"prompt"`
		Trace  bool   `toml:"trace"`
	} `toml:"repl"`
}

// Default returns a configuration with default values.
func Default() *Config {
	cfg := &Config{}
	cfg.Store.Capacity = 4096
	cfg.Store.BigEndian = false
	cfg.Store.TailCalls = true
	cfg.REPL.Prompt = "> "
	cfg.REPL.Trace = false
	return cfg
}

// Path returns the per-user config file path, falling back to the current
// directory when no user config dir is available.
func Path() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "gowren.toml"
	}
	return filepath.Join(dir, "gowren", "config.toml")
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom loads configuration from the specified file; a missing file
// yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Store.Capacity > 65536 {
		return nil, fmt.Errorf("store capacity %v exceeds the 16-bit binding range", cfg.Store.Capacity)
	}

	return cfg, nil
}
