// Package workflow reconciles the image classifier and the vessel directory
// into a single identification result.
package workflow

import (
	"context"
	"time"

	"github.com/JaimeStill/mariner/internal/vessels"
	"github.com/JaimeStill/mariner/internal/vision"
)

// Result bundles the outputs of both adapters, unmodified. Vessel is nil when
// the lookup was skipped or found nothing.
type Result struct {
	Classification *vision.Classification
	Vessel         *vessels.Vessel
	CompletedAt    time.Time
}

// Execute classifies the image stored at key, then looks up a vessel using
// hints derived from the classification. The lookup is skipped when the
// classification has neither a boat type nor any labels.
func Execute(ctx context.Context, rt *Runtime, key string) *Result {
	c := rt.Classifier.Classify(ctx, key)
	result := &Result{Classification: c}

	if needsLookup(c) {
		result.Vessel = rt.Directory.Lookup(ctx, Hints(c))
	} else {
		rt.Logger.InfoContext(ctx, "vessel lookup skipped", "key", key)
	}

	result.CompletedAt = time.Now()

	attrs := []any{"key", key, "mode", c.Mode, "boat_type", c.BoatType}
	if result.Vessel != nil {
		attrs = append(attrs, "vessel", result.Vessel.Name, "source", result.Vessel.Source)
	}
	rt.Logger.InfoContext(ctx, "identification complete", attrs...)

	return result
}

// Hints derives directory hints from a classification: type, label names
// and color values only.
func Hints(c *vision.Classification) vessels.Hints {
	return vessels.Hints{
		Type:   c.BoatType,
		Labels: c.LabelNames(),
		Colors: c.ColorValues(),
	}
}

func needsLookup(c *vision.Classification) bool {
	return c.BoatType != "" || len(c.Labels) > 0
}
