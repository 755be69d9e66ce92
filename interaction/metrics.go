package interaction

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Build sources reported in hsml_matrix_builds_total.
const (
	SourceComputed = "computed"
	SourceMemory   = "memory"
	SourceStore    = "store"
)

// Metrics collects build counters. A nil *Metrics records nothing.
type Metrics struct {
	builds   *prometheus.CounterVec
	duration *prometheus.HistogramVec
	elements *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg (DefaultRegisterer when nil).
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hsml",
			Subsystem: "matrix",
			Name:      "builds_total",
			Help:      "Interaction matrices returned by Build, by origin.",
		}, []string{"kind", "source"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hsml",
			Subsystem: "matrix",
			Name:      "build_duration_seconds",
			Help:      "Wall time of matrix assembly.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"kind"}),
		elements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hsml",
			Subsystem: "matrix",
			Name:      "elements_total",
			Help:      "Upper-triangle matrix elements evaluated.",
		}, []string{"kind"}),
	}
	for _, c := range []prometheus.Collector{m.builds, m.duration, m.elements} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) observeBuild(kind Kind, source string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.builds.WithLabelValues(kind.String(), source).Inc()
	if source == SourceComputed {
		m.duration.WithLabelValues(kind.String()).Observe(elapsed.Seconds())
	}
}

func (m *Metrics) addElements(kind Kind, n int) {
	if m == nil {
		return
	}
	m.elements.WithLabelValues(kind.String()).Add(float64(n))
}
