package database

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
)

// NewMigrator builds a migrate instance reading from the subdirectory of
// migrations named after the configured driver. The caller must Close it.
func NewMigrator(cfg *Config, migrations fs.FS) (*migrate.Migrate, error) {
	if cfg.Driver != DriverPostgres {
		if err := ensureDir(cfg.Path); err != nil {
			return nil, err
		}
	}

	source, err := iofs.New(migrations, cfg.Driver)
	if err != nil {
		return nil, fmt.Errorf("create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, cfg.MigrateURL())
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}

	return m, nil
}

// Migrate applies all pending up migrations.
func Migrate(cfg *Config, migrations fs.FS, logger *slog.Logger) error {
	m, err := NewMigrator(cfg, migrations)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("read migration version: %w", err)
	}

	logger.Info("schema migrated", "driver", cfg.Driver, "version", version, "dirty", dirty)
	return nil
}
