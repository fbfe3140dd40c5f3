// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, database, storage, metrics) and the
// external adapters (image classifier, vessel directory) that domain systems require.
package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/JaimeStill/mariner/internal/config"
	"github.com/JaimeStill/mariner/internal/migrations"
	"github.com/JaimeStill/mariner/internal/vessels"
	"github.com/JaimeStill/mariner/internal/vision"
	"github.com/JaimeStill/mariner/pkg/database"
	"github.com/JaimeStill/mariner/pkg/lifecycle"
	"github.com/JaimeStill/mariner/pkg/metrics"
	"github.com/JaimeStill/mariner/pkg/storage"
)

// ErrLocked indicates another process holds the data directory lock.
var ErrLocked = errors.New("data directory locked by another mariner process")

// Infrastructure holds the core systems required by all domain modules.
// Adapters are built once here and shared by reference.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Metrics   *metrics.Metrics
	Vision    *vision.Classifier
	Vessels   *vessels.Directory

	dbConfig *database.Config
	lock     *flock.Flock
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	return NewWithLogger(cfg, slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

// NewWithLogger is New with a caller-supplied logger.
func NewWithLogger(cfg *config.Config, logger *slog.Logger) (*Infrastructure, error) {
	lc := lifecycle.New()

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	m, err := metrics.New()
	if err != nil {
		return nil, fmt.Errorf("metrics init failed: %w", err)
	}

	classifier, err := newClassifier(&cfg.Vision, store, logger, m)
	if err != nil {
		return nil, err
	}

	directory, err := newDirectory(&cfg.Vessels, logger, m)
	if err != nil {
		return nil, err
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Metrics:   m,
		Vision:    classifier,
		Vessels:   directory,
		dbConfig:  &cfg.Database,
		lock:      flock.New(cfg.LockPath()),
	}, nil
}

// Start applies pending migrations when enabled and registers all
// infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if i.dbConfig.ShouldMigrate() {
		if err := database.Migrate(i.dbConfig, migrations.FS, i.Logger); err != nil {
			return fmt.Errorf("migrate failed: %w", err)
		}
	}
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	return nil
}

// Lock acquires the single-instance lock in the data directory and releases
// it on shutdown. Returns ErrLocked when another process holds it.
func (i *Infrastructure) Lock() error {
	if err := os.MkdirAll(filepath.Dir(i.lock.Path()), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	ok, err := i.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrLocked, i.lock.Path())
	}

	i.Lifecycle.OnShutdown(func() {
		<-i.Lifecycle.Context().Done()
		if err := i.lock.Unlock(); err != nil {
			i.Logger.Warn("release lock failed", "error", err)
		}
	})

	i.Logger.Info("data directory locked", "path", i.lock.Path())
	return nil
}

func newClassifier(cfg *vision.Config, store storage.System, logger *slog.Logger, m *metrics.Metrics) (*vision.Classifier, error) {
	vm, err := vision.NewMetrics(m.Registerer())
	if err != nil {
		return nil, fmt.Errorf("vision metrics: %w", err)
	}

	annotator, err := vision.NewAnnotator(context.Background(), cfg)
	switch {
	case errors.Is(err, vision.ErrNotConfigured):
		logger.Info("vision api not configured, classifier runs synthetic", "reason", err)
		annotator = nil
	case err != nil:
		return nil, fmt.Errorf("vision init failed: %w", err)
	}

	return vision.New(cfg, annotator, store, logger, vm), nil
}

func newDirectory(cfg *vessels.Config, logger *slog.Logger, m *metrics.Metrics) (*vessels.Directory, error) {
	vm, err := vessels.NewMetrics(m.Registerer())
	if err != nil {
		return nil, fmt.Errorf("vessels metrics: %w", err)
	}

	registries := vessels.NewRegistries(cfg, logger)
	if len(registries) == 0 {
		logger.Info("no vessel registry keys configured, using demo data")
	}

	return vessels.New(cfg, registries, logger, vm), nil
}
