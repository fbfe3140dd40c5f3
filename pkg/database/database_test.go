package database_test

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/JaimeStill/mariner/pkg/database"
	"github.com/JaimeStill/mariner/pkg/lifecycle"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sqliteConfig(t *testing.T) *database.Config {
	t.Helper()
	cfg := &database.Config{
		Path: filepath.Join(t.TempDir(), "nested", "test.db"),
	}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	return cfg
}

func TestNewSetsPoolParams(t *testing.T) {
	cfg := database.Config{
		Driver:          "postgres",
		Host:            "localhost",
		Port:            5432,
		Name:            "testdb",
		User:            "testuser",
		SSLMode:         "disable",
		MaxOpenConns:    42,
		MaxIdleConns:    7,
		ConnMaxLifetime: "10m",
		ConnTimeout:     "3s",
	}

	sys, err := database.New(&cfg, discardLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	conn := sys.Connection()
	defer conn.Close()

	if sys.Driver() != "postgres" {
		t.Errorf("Driver() = %q, want postgres", sys.Driver())
	}

	stats := conn.Stats()
	if stats.MaxOpenConnections != 42 {
		t.Errorf("MaxOpenConnections = %d, want 42", stats.MaxOpenConnections)
	}
}

func TestSQLiteStartAndShutdown(t *testing.T) {
	cfg := sqliteConfig(t)

	sys, err := database.New(cfg, discardLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	lc := lifecycle.New()
	if err := sys.Start(lc); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := lc.WaitForStartup(); err != nil {
		t.Fatalf("startup failed: %v", err)
	}

	var mode string
	if err := sys.Connection().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}

	if err := lc.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}

	if err := sys.Connection().Ping(); err == nil {
		t.Error("connection should be closed after shutdown")
	}
}

func TestMigrate(t *testing.T) {
	cfg := sqliteConfig(t)

	migrations := fstest.MapFS{
		"sqlite/000001_widgets.up.sql": &fstest.MapFile{
			Data: []byte("CREATE TABLE widgets (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT);"),
		},
		"sqlite/000001_widgets.down.sql": &fstest.MapFile{
			Data: []byte("DROP TABLE widgets;"),
		},
	}

	if err := database.Migrate(cfg, migrations, discardLogger()); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	// a second run is a no-op
	if err := database.Migrate(cfg, migrations, discardLogger()); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}

	sys, err := database.New(cfg, discardLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer sys.Connection().Close()

	if _, err := sys.Connection().Exec("INSERT INTO widgets (name) VALUES ($1)", "anchor"); err != nil {
		t.Fatalf("insert into migrated table: %v", err)
	}
}

func TestUnsupportedDriver(t *testing.T) {
	cfg := database.Config{Driver: "mysql"}
	if err := cfg.Finalize(nil); !errors.Is(err, database.ErrUnsupportedDriver) {
		t.Errorf("Finalize() error = %v, want ErrUnsupportedDriver", err)
	}
}
