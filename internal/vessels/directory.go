package vessels

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/patrickmn/go-cache"
)

// Directory resolves vessels through the configured registries and falls back
// to the embedded demo directory.
type Directory struct {
	registries []Registry
	cache      *cache.Cache
	logger     *slog.Logger
	metrics    *Metrics
}

// New creates a Directory over registries, queried in the given order.
func New(cfg *Config, registries []Registry, logger *slog.Logger, metrics *Metrics) *Directory {
	ttl := cfg.CacheTTLDuration()
	return &Directory{
		registries: registries,
		cache:      cache.New(ttl, ttl*2),
		logger:     logger.With("system", "vessels"),
		metrics:    metrics,
	}
}

func (d *Directory) Handler() *Handler {
	return NewHandler(d, d.logger)
}

// Live reports whether any registry is configured.
func (d *Directory) Live() bool {
	return len(d.registries) > 0
}

// Lookup resolves hints to a vessel. Identifier hints select LookupMMSI or
// LookupIMO and never fall through to search. Otherwise the registries are
// searched in order and, failing that, a demo vessel is returned.
func (d *Directory) Lookup(ctx context.Context, hints Hints) *Vessel {
	if hints.MMSI != "" {
		return d.LookupMMSI(ctx, hints.MMSI)
	}
	if hints.IMO != "" {
		return d.LookupIMO(ctx, hints.IMO)
	}

	for _, r := range d.registries {
		v, err := r.Search(ctx, hints)
		d.metrics.outcome(r.Name(), v, err)
		if err != nil {
			d.logger.Warn("registry search failed", "registry", r.Name(), "error", err)
			continue
		}
		if v != nil {
			return live(v)
		}
	}

	d.metrics.fallback()
	v, ok := demoByType(hints.Type)
	if !ok {
		v = demo[rand.IntN(len(demo))]
	}
	note := DemoNote
	v.Source = SourceDemo
	v.Note = &note

	d.logger.Debug("demo vessel selected", "type", hints.Type, "name", v.Name)
	return &v
}

// LookupMMSI returns the vessel with the given MMSI, or nil.
func (d *Directory) LookupMMSI(ctx context.Context, mmsi string) *Vessel {
	return d.lookupID(ctx, "mmsi", mmsi, Registry.LookupMMSI, demoByMMSI)
}

// LookupIMO returns the vessel with the given IMO number, or nil.
func (d *Directory) LookupIMO(ctx context.Context, imo string) *Vessel {
	return d.lookupID(ctx, "imo", imo, Registry.LookupIMO, demoByIMO)
}

// Search wraps Lookup and always returns a slice.
func (d *Directory) Search(ctx context.Context, hints Hints) []Vessel {
	v := d.Lookup(ctx, hints)
	if v == nil {
		return []Vessel{}
	}
	return []Vessel{*v}
}

type registryLookup func(Registry, context.Context, string) (*Vessel, error)

func (d *Directory) lookupID(
	ctx context.Context,
	kind, id string,
	query registryLookup,
	fallback func(string) (Vessel, bool),
) *Vessel {
	if id == "" {
		return nil
	}

	key := kind + ":" + id
	if cached, ok := d.cache.Get(key); ok {
		d.metrics.cacheHit()
		if v := cached.(*Vessel); v != nil {
			c := *v
			return &c
		}
	} else if v := d.queryRegistries(ctx, key, kind, id, query); v != nil {
		return v
	}

	if v, ok := fallback(id); ok {
		v.Source = SourceDemo
		return &v
	}

	d.logger.Debug("vessel not found", kind, id)
	return nil
}

// queryRegistries tries each registry in order. Answers are cached, including
// misses, as long as no registry failed.
func (d *Directory) queryRegistries(
	ctx context.Context,
	key, kind, id string,
	query registryLookup,
) *Vessel {
	if len(d.registries) == 0 {
		return nil
	}

	failed := false
	for _, r := range d.registries {
		v, err := query(r, ctx, id)
		d.metrics.outcome(r.Name(), v, err)
		if err != nil {
			failed = true
			d.logger.Warn("registry lookup failed", "registry", r.Name(), kind, id, "error", err)
			continue
		}
		if v != nil {
			v = live(v)
			c := *v
			d.cache.SetDefault(key, &c)
			return v
		}
	}

	if !failed {
		d.cache.SetDefault(key, (*Vessel)(nil))
	}
	return nil
}

func live(v *Vessel) *Vessel {
	v.Source = SourceLive
	v.Note = nil
	return v
}
