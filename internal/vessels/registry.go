package vessels

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/time/rate"
)

// Registry is a live vessel registry. Implementations return (nil, nil) when
// the registry answered but has no matching vessel.
type Registry interface {
	Name() string
	Search(ctx context.Context, hints Hints) (*Vessel, error)
	LookupMMSI(ctx context.Context, mmsi string) (*Vessel, error)
	LookupIMO(ctx context.Context, imo string) (*Vessel, error)
}

// NewRegistries builds the registries that have an API key configured, in
// lookup priority order.
func NewRegistries(cfg *Config, logger *slog.Logger) []Registry {
	var out []Registry
	if cfg.MarineTraffic.Enabled() {
		out = append(out, NewMarineTraffic(&cfg.MarineTraffic, logger))
	}
	if cfg.VesselFinder.Enabled() {
		out = append(out, NewVesselFinder(&cfg.VesselFinder, logger))
	}
	return out
}

// client holds what both registry clients share: an HTTP client with a
// timeout and a request limiter.
type client struct {
	name    string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

func newClient(name string, cfg *RegistryConfig, logger *slog.Logger) client {
	return client{
		name:    name,
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.TimeoutDuration()},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.Burst),
		logger:  logger.With("registry", name),
	}
}

// get waits for the limiter, issues a GET and returns the body of a 200
// response. A 404 yields a nil body and nil error.
func (c *client) get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s rate limiter: %w", c.name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", c.name, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", c.name, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("registry response", "status", resp.StatusCode, "duration", time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("%s: %w: %d", c.name, ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%s read body: %w", c.name, err)
	}
	return body, nil
}

// titleCase normalizes registry vessel types ("PLEASURE CRAFT" -> "Pleasure Craft").
// A Caser is stateful, so one is created per call.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return cases.Title(language.English).String(s)
}
