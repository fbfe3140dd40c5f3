package vision

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds Vision API credentials and call limits. With no API key and
// no readable credentials file the classifier runs in synthetic mode.
type Config struct {
	CredentialsFile string `toml:"credentials_file"`
	APIKey          string `toml:"api_key"`
	Endpoint        string `toml:"endpoint"`
	Timeout         string `toml:"timeout"`
	MaxResults      int    `toml:"max_results"`
}

// Env maps config fields to environment variable names. ApplicationCredentials
// is the standard Google variable; CredentialsFile is applied after it.
type Env struct {
	ApplicationCredentials string
	CredentialsFile        string
	APIKey                 string
	Endpoint               string
	Timeout                string
	MaxResults             string
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
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
	if overlay.CredentialsFile != "" {
		c.CredentialsFile = overlay.CredentialsFile
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.Endpoint != "" {
		c.Endpoint = overlay.Endpoint
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.MaxResults != 0 {
		c.MaxResults = overlay.MaxResults
	}
}

func (c *Config) loadDefaults() {
	if c.CredentialsFile == "" {
		c.CredentialsFile = "google-credentials.json"
	}
	if c.Timeout == "" {
		c.Timeout = "20s"
	}
	if c.MaxResults <= 0 {
		c.MaxResults = 20
	}
}

func (c *Config) loadEnv(env *Env) {
	for _, name := range []string{env.ApplicationCredentials, env.CredentialsFile} {
		if name == "" {
			continue
		}
		if v := os.Getenv(name); v != "" {
			c.CredentialsFile = v
		}
	}
	if env.APIKey != "" {
		if v := os.Getenv(env.APIKey); v != "" {
			c.APIKey = v
		}
	}
	if env.Endpoint != "" {
		if v := os.Getenv(env.Endpoint); v != "" {
			c.Endpoint = v
		}
	}
	if env.Timeout != "" {
		if v := os.Getenv(env.Timeout); v != "" {
			c.Timeout = v
		}
	}
	if env.MaxResults != "" {
		if v := os.Getenv(env.MaxResults); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.MaxResults = n
			}
		}
	}
}

func (c *Config) validate() error {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxResults < 1 {
		return fmt.Errorf("max_results must be positive")
	}
	return nil
}
