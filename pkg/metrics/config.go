package metrics

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ConfigEnv maps environment variable names for metrics configuration.
type ConfigEnv struct {
	Enabled   string
	Path      string
	Namespace string
}

// Config holds metrics configuration settings.
type Config struct {
	Enabled   *bool  `toml:"enabled"`
	Path      string `toml:"path"`
	Namespace string `toml:"namespace"`
}

// IsEnabled reports whether metrics are collected. Unset means enabled.
func (c *Config) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize(env *ConfigEnv) error {
	c.loadDefaults()
	if err := c.loadEnv(env); err != nil {
		return err
	}
	return c.validate()
}

// Merge applies non-zero values from the overlay configuration.
func (c *Config) Merge(overlay *Config) {
	if overlay.Enabled != nil {
		c.Enabled = overlay.Enabled
	}
	if overlay.Path != "" {
		c.Path = overlay.Path
	}
	if overlay.Namespace != "" {
		c.Namespace = overlay.Namespace
	}
}

func (c *Config) loadDefaults() {
	if c.Path == "" {
		c.Path = "/metrics"
	}
	if c.Namespace == "" {
		c.Namespace = "frenchcert"
	}
}

func (c *Config) loadEnv(env *ConfigEnv) error {
	if env == nil {
		return nil
	}
	if v := os.Getenv(env.Enabled); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", env.Enabled, err)
		}
		c.Enabled = &b
	}
	if v := os.Getenv(env.Path); v != "" {
		c.Path = v
	}
	if v := os.Getenv(env.Namespace); v != "" {
		c.Namespace = v
	}
	return nil
}

func (c *Config) validate() error {
	if !strings.HasPrefix(c.Path, "/") {
		return fmt.Errorf("metrics path must start with /: %q", c.Path)
	}
	return nil
}
