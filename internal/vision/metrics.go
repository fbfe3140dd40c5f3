package vision

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts classifications by mode and live API failures.
// A nil *Metrics records nothing.
type Metrics struct {
	classifications *prometheus.CounterVec
	apiErrors       *prometheus.CounterVec
	duration        prometheus.Histogram
}

// NewMetrics creates the vision collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		classifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mariner",
			Subsystem: "vision",
			Name:      "classifications_total",
			Help:      "Classifications produced, by mode.",
		}, []string{"mode"}),
		apiErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mariner",
			Subsystem: "vision",
			Name:      "api_errors_total",
			Help:      "Live Vision API failures, by kind (reported or unreachable).",
		}, []string{"kind"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mariner",
			Subsystem: "vision",
			Name:      "classify_duration_seconds",
			Help:      "Time spent producing a classification.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
	}

	for _, c := range []prometheus.Collector{m.classifications, m.apiErrors, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register vision metrics: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) observe(mode Mode, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.classifications.WithLabelValues(string(mode)).Inc()
	m.duration.Observe(elapsed.Seconds())
}

func (m *Metrics) apiError(kind string) {
	if m == nil {
		return
	}
	m.apiErrors.WithLabelValues(kind).Inc()
}
