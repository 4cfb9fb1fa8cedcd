package listview

import (
	"fmt"
	"os"
	"time"
)

// Debounce bounds.
const (
	MinDebounce     = 300 * time.Millisecond
	MaxDebounce     = 500 * time.Millisecond
	DefaultDebounce = 400 * time.Millisecond
)

// ConfigEnv maps environment variable names for list configuration.
type ConfigEnv struct {
	Debounce string
}

// Config holds list view settings.
type Config struct {
	Debounce string `toml:"debounce"`

	debounceVal time.Duration
}

// DebounceDuration returns the parsed debounce delay, kept within
// [MinDebounce, MaxDebounce].
func (c *Config) DebounceDuration() time.Duration {
	if c.debounceVal == 0 {
		return DefaultDebounce
	}
	return c.debounceVal
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize(env *ConfigEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *Config) Merge(overlay *Config) {
	if overlay.Debounce != "" {
		c.Debounce = overlay.Debounce
	}
}

func (c *Config) loadDefaults() {
	if c.Debounce == "" {
		c.Debounce = DefaultDebounce.String()
	}
}

func (c *Config) loadEnv(env *ConfigEnv) {
	if env.Debounce != "" {
		if v := os.Getenv(env.Debounce); v != "" {
			c.Debounce = v
		}
	}
}

func (c *Config) validate() error {
	d, err := time.ParseDuration(c.Debounce)
	if err != nil {
		return fmt.Errorf("invalid debounce: %w", err)
	}
	c.debounceVal = min(max(d, MinDebounce), MaxDebounce)
	return nil
}
