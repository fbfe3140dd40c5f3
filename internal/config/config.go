package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/JaimeStill/mariner/internal/vessels"
	"github.com/JaimeStill/mariner/internal/vision"
	"github.com/JaimeStill/mariner/pkg/database"
	"github.com/JaimeStill/mariner/pkg/storage"
	"github.com/pelletier/go-toml/v2"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvMarinerEnv             = "MARINER_ENV"
	EnvMarinerDataDir         = "MARINER_DATA_DIR"
	EnvMarinerShutdownTimeout = "MARINER_SHUTDOWN_TIMEOUT"
	EnvMarinerVersion         = "MARINER_VERSION"
)

var databaseEnv = &database.Env{
	Driver:          "MARINER_DB_DRIVER",
	Path:            "MARINER_DB_PATH",
	Host:            "MARINER_DB_HOST",
	Port:            "MARINER_DB_PORT",
	Name:            "MARINER_DB_NAME",
	User:            "MARINER_DB_USER",
	Password:        "MARINER_DB_PASSWORD",
	SSLMode:         "MARINER_DB_SSL_MODE",
	MaxOpenConns:    "MARINER_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "MARINER_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "MARINER_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "MARINER_DB_CONN_TIMEOUT",
	BusyTimeout:     "MARINER_DB_BUSY_TIMEOUT",
	AutoMigrate:     "MARINER_DB_AUTO_MIGRATE",
}

var storageEnv = &storage.Env{
	Provider:         "MARINER_STORAGE_PROVIDER",
	Root:             "MARINER_STORAGE_ROOT",
	ContainerName:    "MARINER_STORAGE_CONTAINER_NAME",
	ConnectionString: "MARINER_STORAGE_CONNECTION_STRING",
	AccountURL:       "MARINER_STORAGE_ACCOUNT_URL",
}

var visionEnv = &vision.Env{
	ApplicationCredentials: "GOOGLE_APPLICATION_CREDENTIALS",
	CredentialsFile:        "MARINER_VISION_CREDENTIALS_FILE",
	APIKey:                 "MARINER_VISION_API_KEY",
	Endpoint:               "MARINER_VISION_ENDPOINT",
	Timeout:                "MARINER_VISION_TIMEOUT",
	MaxResults:             "MARINER_VISION_MAX_RESULTS",
}

var vesselsEnv = &vessels.Env{
	MarineTrafficKey: "MARINETRAFFIC_API_KEY",
	MarineTrafficURL: "MARINER_MARINETRAFFIC_URL",
	VesselFinderKey:  "VESSELFINDER_API_KEY",
	VesselFinderURL:  "MARINER_VESSELFINDER_URL",
	CacheTTL:         "MARINER_VESSELS_CACHE_TTL",
}

// Config is the root configuration for the Mariner service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	API             APIConfig       `toml:"api"`
	Vision          vision.Config   `toml:"vision"`
	Vessels         vessels.Config  `toml:"vessels"`
	DataDir         string          `toml:"data_dir"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the MARINER_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvMarinerEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// LockPath returns the single-instance lock file inside DataDir.
func (c *Config) LockPath() string {
	return filepath.Join(c.DataDir, "mariner.lock")
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom is Load with config files resolved relative to dir.
func LoadFrom(dir string) (*Config, error) {
	cfg := &Config{}

	base := filepath.Join(dir, BaseConfigFile)
	if _, err := os.Stat(base); err == nil {
		loaded, err := load(base)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(dir); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.DataDir != "" {
		c.DataDir = overlay.DataDir
	}
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Vision.Merge(&overlay.Vision)
	c.Vessels.Merge(&overlay.Vessels)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Vision.Finalize(visionEnv); err != nil {
		return fmt.Errorf("vision: %w", err)
	}
	if err := c.Vessels.Finalize(vesselsEnv); err != nil {
		return fmt.Errorf("vessels: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvMarinerDataDir); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv(EnvMarinerShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvMarinerVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath(dir string) string {
	if env := os.Getenv(EnvMarinerEnv); env != "" {
		path := filepath.Join(dir, fmt.Sprintf(OverlayConfigPattern, env))
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
