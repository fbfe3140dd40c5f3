package vision

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/mariner/pkg/storage"
)

// Images is the subset of blob storage the classifier reads from.
type Images interface {
	Stat(ctx context.Context, key string) (*storage.Meta, error)
	Download(ctx context.Context, key string) (*storage.Blob, error)
}

// Classifier produces a Classification for a stored image.
type Classifier struct {
	annotator Annotator
	images    Images
	timeout   time.Duration
	logger    *slog.Logger
	metrics   *Metrics
}

// New creates a Classifier. A nil annotator selects synthetic mode.
func New(
	cfg *Config,
	annotator Annotator,
	images Images,
	logger *slog.Logger,
	metrics *Metrics,
) *Classifier {
	return &Classifier{
		annotator: annotator,
		images:    images,
		timeout:   cfg.TimeoutDuration(),
		logger:    logger.With("system", "vision"),
		metrics:   metrics,
	}
}

// Live reports whether a live annotator is configured.
func (c *Classifier) Live() bool {
	return c.annotator != nil
}

// Classify never fails: live errors reported by the service yield the failed
// result, and transport failures fall back to the synthetic result.
func (c *Classifier) Classify(ctx context.Context, key string) *Classification {
	start := time.Now()
	result := c.classify(ctx, key)
	c.metrics.observe(result.Mode, time.Since(start))

	c.logger.Info(
		"image classified",
		"key", key,
		"mode", result.Mode,
		"boat_type", result.BoatType,
		"confidence", result.Confidence,
	)
	return result
}

func (c *Classifier) classify(ctx context.Context, key string) *Classification {
	if c.annotator == nil {
		return c.synthetic(ctx, key)
	}

	result, err := c.live(ctx, key)
	if err == nil {
		return result
	}

	if unreachable(err) {
		c.metrics.apiError("unreachable")
		c.logger.Warn("vision api unreachable, using synthetic result", "key", key, "error", err)
		return c.synthetic(ctx, key)
	}

	c.metrics.apiError("reported")
	c.logger.Warn("vision analysis failed", "key", key, "error", err)
	return Failed(err)
}

func (c *Classifier) synthetic(ctx context.Context, key string) *Classification {
	meta, err := c.images.Stat(ctx, key)
	if err != nil {
		c.logger.Error("stat image failed", "key", key, "error", err)
		return Failed(fmt.Errorf("stat image: %w", err))
	}
	return Synthesize(meta.Size, meta.ModTime)
}

func (c *Classifier) live(ctx context.Context, key string) (*Classification, error) {
	content, err := c.read(ctx, key)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var a annotations
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r, err := c.annotator.Annotate(gctx, content, FeatureLabels)
		if err != nil {
			return err
		}
		a.labels = r.LabelAnnotations
		return nil
	})

	g.Go(func() error {
		r, err := c.annotator.Annotate(gctx, content, FeatureObjects)
		if err != nil {
			return err
		}
		a.objects = r.LocalizedObjectAnnotations
		return nil
	})

	g.Go(func() error {
		r, err := c.annotator.Annotate(gctx, content, FeatureProperties)
		if err != nil {
			return err
		}
		a.colors = r.ImagePropertiesAnnotation
		return nil
	})

	g.Go(func() error {
		r, err := c.annotator.Annotate(gctx, content, FeatureWeb)
		if err != nil {
			return err
		}
		a.entities = r.WebDetection
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return analyze(&a), nil
}

func (c *Classifier) read(ctx context.Context, key string) ([]byte, error) {
	blob, err := c.images.Download(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("download image: %w", err)
	}
	defer blob.Body.Close()

	content, err := io.ReadAll(blob.Body)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return content, nil
}
