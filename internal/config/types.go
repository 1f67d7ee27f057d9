// Package config defines the kiln configuration file format.
//
// Configuration tunes how kiln talks to the host: tool paths, the setup
// script location, and logging. The provisioning profile itself (container
// resources, hostname, network shape) is fixed by the provision command
// and is deliberately not configurable here.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultSetupScript is where the packaged controller setup script is
// installed on the host.
const DefaultSetupScript = "/usr/local/share/kiln/unifi-setup.sh"

// Config is the top-level kiln configuration.
type Config struct {
	Log   LogConfig   `yaml:"log,omitempty"`
	Tools ToolsConfig `yaml:"tools,omitempty"`

	// SetupScript is the host path of the script pushed into the
	// container and executed to install the controller.
	SetupScript string `yaml:"setup_script,omitempty"`
}

// LogConfig controls the stderr status stream.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`  // debug, info, warning, error
	Format string `yaml:"format,omitempty"` // console or json
}

// ToolsConfig overrides the host control tool paths. Bare names are
// resolved through PATH, so overrides are only needed for non-standard
// installs.
type ToolsConfig struct {
	PCT    string `yaml:"pct,omitempty"`
	PVESM  string `yaml:"pvesm,omitempty"`
	PVEAM  string `yaml:"pveam,omitempty"`
	PVESH  string `yaml:"pvesh,omitempty"`
	Mke2fs string `yaml:"mke2fs,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Tools: ToolsConfig{
			PCT:    "pct",
			PVESM:  "pvesm",
			PVEAM:  "pveam",
			PVESH:  "pvesh",
			Mke2fs: "mke2fs",
		},
		SetupScript: DefaultSetupScript,
	}
}

// Load reads a configuration file over the defaults, applies environment
// overrides, normalizes, and validates the result. An empty path loads
// defaults only.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies KILN_* environment variables over file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("KILN_SETUP_SCRIPT"); v != "" {
		c.SetupScript = v
	}
	if v := os.Getenv("KILN_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// Normalize sanitizes user input to consistent formats. Empty values fall
// back to their defaults so a sparse config file never disables a tool.
func (c *Config) Normalize() {
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))

	def := Default()
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = def.Log.Format
	}
	if c.Tools.PCT == "" {
		c.Tools.PCT = def.Tools.PCT
	}
	if c.Tools.PVESM == "" {
		c.Tools.PVESM = def.Tools.PVESM
	}
	if c.Tools.PVEAM == "" {
		c.Tools.PVEAM = def.Tools.PVEAM
	}
	if c.Tools.PVESH == "" {
		c.Tools.PVESH = def.Tools.PVESH
	}
	if c.Tools.Mke2fs == "" {
		c.Tools.Mke2fs = def.Tools.Mke2fs
	}
	if c.SetupScript == "" {
		c.SetupScript = def.SetupScript
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warning, error, got %q", c.Log.Level)
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}

	return nil
}
