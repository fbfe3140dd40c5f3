package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvPort                  = "PORT"
	EnvServerHost            = "MARINER_SERVER_HOST"
	EnvServerPort            = "MARINER_SERVER_PORT"
	EnvServerReadTimeout     = "MARINER_SERVER_READ_TIMEOUT"
	EnvServerWriteTimeout    = "MARINER_SERVER_WRITE_TIMEOUT"
	EnvServerIdleTimeout     = "MARINER_SERVER_IDLE_TIMEOUT"
	EnvServerShutdownTimeout = "MARINER_SERVER_SHUTDOWN_TIMEOUT"
)

// ServerConfig holds HTTP listener parameters. Timeouts are duration strings.
// WriteTimeout covers a full identify request, including the Vision and
// registry round trips.
type ServerConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	ReadTimeout     string `toml:"read_timeout"`
	WriteTimeout    string `toml:"write_timeout"`
	IdleTimeout     string `toml:"idle_timeout"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
}

func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *ServerConfig) ReadTimeoutDuration() time.Duration { return duration(c.ReadTimeout) }
func (c *ServerConfig) WriteTimeoutDuration() time.Duration { return duration(c.WriteTimeout) }
func (c *ServerConfig) IdleTimeoutDuration() time.Duration { return duration(c.IdleTimeout) }
func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration { return duration(c.ShutdownTimeout) }

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ServerConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ServerConfig) Merge(overlay *ServerConfig) {
	if overlay.Host != "" {
		c.Host = overlay.Host
	}
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
	for _, f := range c.timeouts(overlay) {
		if *f.src != "" {
			*f.dst = *f.src
		}
	}
}

type timeoutField struct {
	name     string
	env      string
	fallback string
	dst      *string
	src      *string
}

// timeouts pairs each timeout field of c with the same field of other.
func (c *ServerConfig) timeouts(other *ServerConfig) []timeoutField {
	return []timeoutField{
		{"read_timeout", EnvServerReadTimeout, "1m", &c.ReadTimeout, &other.ReadTimeout},
		{"write_timeout", EnvServerWriteTimeout, "2m", &c.WriteTimeout, &other.WriteTimeout},
		{"idle_timeout", EnvServerIdleTimeout, "2m", &c.IdleTimeout, &other.IdleTimeout},
		{"shutdown_timeout", EnvServerShutdownTimeout, "30s", &c.ShutdownTimeout, &other.ShutdownTimeout},
	}
}

func (c *ServerConfig) loadDefaults() {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.Port == 0 {
		c.Port = 3001
	}
	for _, f := range c.timeouts(c) {
		if *f.dst == "" {
			*f.dst = f.fallback
		}
	}
}

func (c *ServerConfig) loadEnv() {
	if v := os.Getenv(EnvServerHost); v != "" {
		c.Host = v
	}
	// MARINER_SERVER_PORT wins over the platform PORT.
	for _, name := range []string{EnvPort, EnvServerPort} {
		if v := os.Getenv(name); v != "" {
			if port, err := strconv.Atoi(v); err == nil {
				c.Port = port
			}
		}
	}
	for _, f := range c.timeouts(c) {
		if v := os.Getenv(f.env); v != "" {
			*f.dst = v
		}
	}
}

func (c *ServerConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	for _, f := range c.timeouts(c) {
		if d, err := time.ParseDuration(*f.dst); err != nil || d < 0 {
			return fmt.Errorf("invalid %s: %q", f.name, *f.dst)
		}
	}
	return nil
}

func duration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}
