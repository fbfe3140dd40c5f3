package vessels

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts registry calls and demo fallbacks. A nil *Metrics records nothing.
type Metrics struct {
	registry  *prometheus.CounterVec
	fallbacks prometheus.Counter
	cacheHits prometheus.Counter
}

// NewMetrics creates the vessel collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		registry: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mariner",
			Subsystem: "vessels",
			Name:      "registry_requests_total",
			Help:      "Registry lookups, by registry and outcome (hit, miss, error).",
		}, []string{"registry", "outcome"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mariner",
			Subsystem: "vessels",
			Name:      "demo_fallbacks_total",
			Help:      "Lookups answered from the demo directory.",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mariner",
			Subsystem: "vessels",
			Name:      "cache_hits_total",
			Help:      "Identifier lookups served from cache.",
		}),
	}

	for _, c := range []prometheus.Collector{m.registry, m.fallbacks, m.cacheHits} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register vessel metrics: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) outcome(registry string, v *Vessel, err error) {
	if m == nil {
		return
	}
	switch {
	case err != nil:
		m.registry.WithLabelValues(registry, "error").Inc()
	case v == nil:
		m.registry.WithLabelValues(registry, "miss").Inc()
	default:
		m.registry.WithLabelValues(registry, "hit").Inc()
	}
}

func (m *Metrics) fallback() {
	if m == nil {
		return
	}
	m.fallbacks.Inc()
}

func (m *Metrics) cacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}
