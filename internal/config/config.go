// Package config handles plankit configuration loading and defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Default values.
const (
	DefaultOutputDir = "plankit-output"
	DefaultFormat    = "both"
	DefaultStrategy  = "layer-based"
)

// Config holds tool-level settings. Validation rule semantics are fixed
// and deliberately not configurable.
type Config struct {
	// OutputDir is where generated documents and reports are written.
	OutputDir string `toml:"output_dir"`

	// Format selects plan-document output: markdown, json, or both.
	Format string `toml:"format"`

	// Strategy is the default decomposition strategy.
	Strategy string `toml:"strategy"`

	// Verbose enables debug logging.
	Verbose bool `toml:"verbose"`
}

// Default returns a Config populated with defaults only.
func Default() *Config {
	return &Config{
		OutputDir: DefaultOutputDir,
		Format:    DefaultFormat,
		Strategy:  DefaultStrategy,
	}
}

// Load builds the configuration from, in priority order: defaults, the
// user config file, the project config file, then environment variables.
// Command flags override on top of this at the CLI layer. Missing files
// are fine; only malformed TOML is an error.
func Load() (*Config, error) {
	cfg := Default()

	if path := findUserConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
	}

	if path := findProjectConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", path, err)
		}
	}

	loadFromEnv(cfg)

	return cfg, nil
}

// findUserConfigFile returns the user-level config path, or "" if none.
func findUserConfigFile() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(configDir, "plankit", "plankit.toml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// findProjectConfigFile returns the project-level config path in the
// current directory, or "" if none. plankit.toml wins over .plankit.toml.
func findProjectConfigFile() string {
	for _, name := range []string{"plankit.toml", ".plankit.toml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

func loadConfigFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("PLANKIT_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("PLANKIT_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("PLANKIT_STRATEGY"); v != "" {
		cfg.Strategy = v
	}
	if v := os.Getenv("PLANKIT_VERBOSE"); v == "1" || v == "true" {
		cfg.Verbose = true
	}
}
