package vessels

import (
	"fmt"
	"os"
	"time"
)

// Config holds registry credentials and the identifier cache lifetime.
// A registry without an API key is skipped.
type Config struct {
	MarineTraffic RegistryConfig `toml:"marinetraffic"`
	VesselFinder  RegistryConfig `toml:"vesselfinder"`
	CacheTTL      string         `toml:"cache_ttl"`
}

// RegistryConfig configures a single registry client.
type RegistryConfig struct {
	APIKey    string  `toml:"api_key"`
	BaseURL   string  `toml:"base_url"`
	Timeout   string  `toml:"timeout"`
	RateLimit float64 `toml:"rate_limit"`
	Burst     int     `toml:"burst"`
}

// Env maps config fields to environment variable names.
type Env struct {
	MarineTrafficKey string
	MarineTrafficURL string
	VesselFinderKey  string
	VesselFinderURL  string
	CacheTTL         string
}

// Enabled reports whether an API key is configured.
func (c *RegistryConfig) Enabled() bool {
	return c.APIKey != ""
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *RegistryConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// CacheTTLDuration returns CacheTTL as a time.Duration.
func (c *Config) CacheTTLDuration() time.Duration {
	d, _ := time.ParseDuration(c.CacheTTL)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	c.MarineTraffic.Merge(&overlay.MarineTraffic)
	c.VesselFinder.Merge(&overlay.VesselFinder)
	if overlay.CacheTTL != "" {
		c.CacheTTL = overlay.CacheTTL
	}
}

// Merge overwrites non-zero fields from overlay.
func (c *RegistryConfig) Merge(overlay *RegistryConfig) {
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.RateLimit > 0 {
		c.RateLimit = overlay.RateLimit
	}
	if overlay.Burst > 0 {
		c.Burst = overlay.Burst
	}
}

func (c *Config) loadDefaults() {
	if c.MarineTraffic.BaseURL == "" {
		c.MarineTraffic.BaseURL = "https://services.marinetraffic.com/api"
	}
	if c.VesselFinder.BaseURL == "" {
		c.VesselFinder.BaseURL = "https://api.vesselfinder.com"
	}
	c.MarineTraffic.loadDefaults()
	c.VesselFinder.loadDefaults()
	if c.CacheTTL == "" {
		c.CacheTTL = "1h"
	}
}

func (c *RegistryConfig) loadDefaults() {
	if c.Timeout == "" {
		c.Timeout = "10s"
	}
	if c.RateLimit <= 0 {
		c.RateLimit = 1
	}
	if c.Burst <= 0 {
		c.Burst = 2
	}
}

func (c *Config) loadEnv(env *Env) {
	setFromEnv(&c.MarineTraffic.APIKey, env.MarineTrafficKey)
	setFromEnv(&c.MarineTraffic.BaseURL, env.MarineTrafficURL)
	setFromEnv(&c.VesselFinder.APIKey, env.VesselFinderKey)
	setFromEnv(&c.VesselFinder.BaseURL, env.VesselFinderURL)
	setFromEnv(&c.CacheTTL, env.CacheTTL)
}

func setFromEnv(field *string, name string) {
	if name == "" {
		return
	}
	if v := os.Getenv(name); v != "" {
		*field = v
	}
}

func (c *Config) validate() error {
	if err := c.MarineTraffic.validate(); err != nil {
		return fmt.Errorf("marinetraffic: %w", err)
	}
	if err := c.VesselFinder.validate(); err != nil {
		return fmt.Errorf("vesselfinder: %w", err)
	}
	if d, err := time.ParseDuration(c.CacheTTL); err != nil || d <= 0 {
		return fmt.Errorf("invalid cache_ttl: %q", c.CacheTTL)
	}
	return nil
}

func (c *RegistryConfig) validate() error {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
