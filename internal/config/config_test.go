package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/mariner/internal/config"
	"github.com/JaimeStill/mariner/pkg/database"
	"github.com/JaimeStill/mariner/pkg/storage"
)

const baseConfig = `
shutdown_timeout = "30s"
version = "0.1.0"
data_dir = "var"

[server]
host = "127.0.0.1"
port = 3001
read_timeout = "1m"
write_timeout = "2m"

[database]
driver = "sqlite"
path = "var/mariner.db"

[storage]
provider = "local"
root = "var/uploads"

[api]
base_path = "/api"
max_upload_size = "10MB"

[api.pagination]
default_limit = 25
max_limit = 100

[vision]
credentials_file = "creds.json"
timeout = "15s"

[vessels]
cache_ttl = "30m"

[vessels.marinetraffic]
api_key = "mt-key"
`

const overlayConfig = `
[server]
port = 9090

[vessels.vesselfinder]
api_key = "vf-key"
`

// isolate clears variables the host environment may carry.
func isolate(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"PORT",
		"GOOGLE_APPLICATION_CREDENTIALS",
		"MARINETRAFFIC_API_KEY",
		"VESSELFINDER_API_KEY",
		config.EnvMarinerEnv,
		config.EnvServerPort,
	} {
		t.Setenv(name, "")
	}
}

func writeConfig(t *testing.T, dir, filename, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644))
}

func TestLoad(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)

	cfg, err := config.LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1:3001", cfg.Server.Addr())
	assert.Equal(t, 2*time.Minute, cfg.Server.IdleTimeoutDuration())
	assert.Equal(t, database.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "var/mariner.db", cfg.Database.Path)
	assert.Equal(t, storage.ProviderLocal, cfg.Storage.Provider)
	assert.Equal(t, 25, cfg.API.Pagination.DefaultLimit)
	assert.Equal(t, 100, cfg.API.Pagination.MaxLimit)
	assert.Equal(t, "creds.json", cfg.Vision.CredentialsFile)
	assert.Equal(t, 15*time.Second, cfg.Vision.TimeoutDuration())
	assert.Equal(t, 30*time.Minute, cfg.Vessels.CacheTTLDuration())
	assert.True(t, cfg.Vessels.MarineTraffic.Enabled())
	assert.False(t, cfg.Vessels.VesselFinder.Enabled())
	assert.Equal(t, filepath.Join("var", "mariner.lock"), cfg.LockPath())
}

func TestLoadWithOverlay(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeConfig(t, dir, config.BaseConfigFile, baseConfig)
	writeConfig(t, dir, "config.staging.toml", overlayConfig)
	t.Setenv(config.EnvMarinerEnv, "staging")

	cfg, err := config.LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port, "port from overlay")
	assert.Equal(t, "127.0.0.1", cfg.Server.Host, "host from base")
	assert.True(t, cfg.Vessels.VesselFinder.Enabled(), "key from overlay")
	assert.True(t, cfg.Vessels.MarineTraffic.Enabled(), "key from base")
	assert.Equal(t, "staging", cfg.Env())
}

func TestLoadNoConfigFile(t *testing.T) {
	isolate(t)

	cfg, err := config.LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, database.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, storage.ProviderLocal, cfg.Storage.Provider)
	assert.Equal(t, "/api", cfg.API.BasePath)
	assert.Equal(t, "local", cfg.Env())
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeoutDuration())
	assert.False(t, cfg.Vessels.MarineTraffic.Enabled())
	assert.False(t, cfg.Vessels.VesselFinder.Enabled())
	assert.Empty(t, cfg.Vision.APIKey)
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/etc/google.json")
	t.Setenv("MARINETRAFFIC_API_KEY", "mt")
	t.Setenv("VESSELFINDER_API_KEY", "vf")
	t.Setenv("MARINER_VERSION", "2.0.0")
	t.Setenv("MARINER_DATA_DIR", "/srv/mariner")
	t.Setenv("MARINER_PAGINATION_MAX_LIMIT", "150")

	cfg, err := config.LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "/etc/google.json", cfg.Vision.CredentialsFile)
	assert.Equal(t, "mt", cfg.Vessels.MarineTraffic.APIKey)
	assert.Equal(t, "vf", cfg.Vessels.VesselFinder.APIKey)
	assert.Equal(t, "2.0.0", cfg.Version)
	assert.Equal(t, "/srv/mariner", cfg.DataDir)
	assert.Equal(t, 150, cfg.API.Pagination.MaxLimit)
}

func TestVisionCredentialsFileWinsOverGoogleVariable(t *testing.T) {
	isolate(t)
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "/etc/google.json")
	t.Setenv("MARINER_VISION_CREDENTIALS_FILE", "/etc/mariner.json")

	cfg, err := config.LoadFrom(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "/etc/mariner.json", cfg.Vision.CredentialsFile)
}

func TestPortPrecedence(t *testing.T) {
	tests := []struct {
		name    string
		port    string
		mariner string
		want    int
	}{
		{"default", "", "", 3001},
		{"platform port", "8080", "", 8080},
		{"mariner port wins", "8080", "9000", 9000},
		{"invalid ignored", "abc", "", 3001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(config.EnvPort, tt.port)
			t.Setenv(config.EnvServerPort, tt.mariner)

			cfg, err := config.LoadFrom(t.TempDir())
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Server.Port)
		})
	}
}

func TestUploadLimits(t *testing.T) {
	isolate(t)

	cfg, err := config.LoadFrom(t.TempDir())
	require.NoError(t, err)

	limits := cfg.API.UploadLimits()
	assert.Equal(t, int64(10*1024*1024), limits.Multipart)
	assert.Equal(t, int64(50*1024*1024), limits.Base64)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{"malformed toml", `server = {`},
		{"invalid port", "[server]\nport = 99999"},
		{"invalid shutdown timeout", `shutdown_timeout = "soon"`},
		{"negative idle timeout", "[server]\nidle_timeout = \"-5s\""},
		{"invalid upload size", "[api]\nmax_upload_size = \"lots\""},
		{"unsupported driver", "[database]\ndriver = \"oracle\""},
		{"unsupported storage", "[storage]\nprovider = \"ftp\""},
		{"invalid vision timeout", "[vision]\ntimeout = \"-1s\""},
		{"invalid cache ttl", "[vessels]\ncache_ttl = \"forever\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			dir := t.TempDir()
			writeConfig(t, dir, config.BaseConfigFile, tt.config)

			_, err := config.LoadFrom(dir)
			assert.Error(t, err)
		})
	}
}
