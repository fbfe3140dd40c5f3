package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/joho/godotenv"

	"github.com/JaimeStill/mariner/internal/config"
	"github.com/JaimeStill/mariner/internal/migrations"
	"github.com/JaimeStill/mariner/pkg/database"
)

func main() {
	var (
		configDir = flag.String("config-dir", ".", "Directory containing config.toml")
		driver    = flag.String("driver", "", "Database driver override (sqlite or postgres)")
		path      = flag.String("path", "", "SQLite database path override")
		up        = flag.Bool("up", false, "Run all up migrations")
		down      = flag.Bool("down", false, "Run all down migrations")
		steps     = flag.Int("steps", 0, "Number of migrations (positive=up, negative=down)")
		version   = flag.Bool("version", false, "Print current migration version")
		force     = flag.Int("force", -1, "Force set version (use with caution)")
	)
	flag.Parse()

	forceSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "force" {
			forceSet = true
		}
	})

	_ = godotenv.Load()

	cfg, err := config.LoadFrom(*configDir)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	dbCfg := cfg.Database
	if *driver != "" {
		dbCfg.Driver = *driver
	}
	if *path != "" {
		dbCfg.Path = *path
	}

	m, err := database.NewMigrator(&dbCfg, migrations.FS)
	if err != nil {
		log.Fatalf("failed to create migrator: %v", err)
	}
	defer m.Close()

	switch {
	case *version:
		v, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("failed to get version: %v", err)
		}
		fmt.Printf("version: %d, dirty: %v\n", v, dirty)
	case forceSet:
		if err := m.Force(*force); err != nil {
			log.Fatalf("failed to force version: %v", err)
		}
		fmt.Printf("forced to version %d\n", *force)
	case *up:
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("failed to run up migrations: %v", err)
		}
		fmt.Println("migrations applied successfully")
	case *down:
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("failed to run down migrations: %v", err)
		}
		fmt.Println("migrations reverted successfully")
	case *steps != 0:
		if err := m.Steps(*steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("failed to run migrations: %v", err)
		}
		fmt.Printf("applied %d migration steps\n", *steps)
	default:
		fmt.Println("usage: migrate [-config-dir DIR] [-driver sqlite|postgres] [-path FILE] [-up|-down|-steps N|-version|-force N]")
		flag.PrintDefaults()
	}
}
