package workflow

import (
	"context"
	"log/slog"

	"github.com/JaimeStill/mariner/internal/vessels"
	"github.com/JaimeStill/mariner/internal/vision"
)

// Classifier produces a classification for a stored image. It never fails.
type Classifier interface {
	Classify(ctx context.Context, key string) *vision.Classification
}

// Directory resolves classification hints to a vessel, or nil. It never fails.
type Directory interface {
	Lookup(ctx context.Context, hints vessels.Hints) *vessels.Vessel
}

// Runtime bundles the dependencies that the identification workflow requires.
// It is constructed by higher-level composition code from Infrastructure.
type Runtime struct {
	Classifier Classifier
	Directory  Directory
	Logger     *slog.Logger
}
