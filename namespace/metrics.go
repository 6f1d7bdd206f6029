package namespace

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/0xalexb/hjarta-ns/namespace/locator"
)

const (
	metricsNamespace = "hjarta"
	metricsSubsystem = "namespace"
)

// Lookup outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Metrics counts resolver activity. One set is shared by a resolver and all
// views derived from it.
type Metrics struct {
	Lookups   *prometheus.CounterVec
	Parses    *prometheus.CounterVec
	CacheHits prometheus.Counter
	Probes    *prometheus.CounterVec
}

// NewMetrics creates the resolver counters and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	metrics := &Metrics{
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{ //nolint:exhaustruct // optional fields
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "lookups_total",
			Help:      "Number of lookups by outcome.",
		}, []string{"outcome"}),
		Parses: prometheus.NewCounterVec(prometheus.CounterOpts{ //nolint:exhaustruct // optional fields
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "document_parses_total",
			Help:      "Number of backing documents parsed, by format.",
		}, []string{"format"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{ //nolint:exhaustruct // optional fields
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "document_cache_hits_total",
			Help:      "Number of document reads served from the cache.",
		}),
		Probes: prometheus.NewCounterVec(prometheus.CounterOpts{ //nolint:exhaustruct // optional fields
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "containment_probes_total",
			Help:      "Number of resources classified by fetching them, by result.",
		}, []string{"result"}),
	}

	if reg == nil {
		return metrics, nil
	}

	for _, collector := range []prometheus.Collector{metrics.Lookups, metrics.Parses, metrics.CacheHits, metrics.Probes} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("registering namespace metrics: %w", err)
		}
	}

	return metrics, nil
}

func (m *Metrics) observeLookup(err error) {
	outcome := OutcomeOK

	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		outcome = OutcomeNotFound
	default:
		outcome = OutcomeError
	}

	m.Lookups.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observeProbe(kind locator.Kind) {
	m.Probes.WithLabelValues(kind.String()).Inc()
}
