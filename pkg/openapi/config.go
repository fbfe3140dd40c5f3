package openapi

import (
	"fmt"
	"net/url"
	"os"
)

// Config holds document metadata. ServerURL, when set, replaces the API base
// path as the advertised server (for deployments behind a proxy).
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
	ServerURL   string `toml:"server_url"`
}

// ConfigEnv names the environment variables that override Config fields.
type ConfigEnv struct {
	Title       string
	Description string
	ServerURL   string
}

func (c *Config) Finalize(env *ConfigEnv) error {
	if c.Title == "" {
		c.Title = "Mariner API"
	}
	if c.Description == "" {
		c.Description = "Boat photo identification and vessel registry lookup service."
	}
	if env != nil {
		override(&c.Title, env.Title)
		override(&c.Description, env.Description)
		override(&c.ServerURL, env.ServerURL)
	}
	if c.ServerURL != "" {
		if _, err := url.Parse(c.ServerURL); err != nil {
			return fmt.Errorf("invalid server_url: %w", err)
		}
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	for _, f := range []struct{ dst, src *string }{
		{&c.Title, &overlay.Title},
		{&c.Description, &overlay.Description},
		{&c.ServerURL, &overlay.ServerURL},
	} {
		if *f.src != "" {
			*f.dst = *f.src
		}
	}
}

// Server returns the URL to advertise, falling back to basePath.
func (c *Config) Server(basePath string) string {
	if c.ServerURL != "" {
		return c.ServerURL
	}
	return basePath
}

func override(field *string, name string) {
	if name == "" {
		return
	}
	if v := os.Getenv(name); v != "" {
		*field = v
	}
}
