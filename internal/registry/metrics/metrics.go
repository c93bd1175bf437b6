package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks registry lookups and cache effectiveness.
type Metrics struct {
	Lookups       *prometheus.CounterVec
	CacheResults  *prometheus.CounterVec
	RecordsStored *prometheus.CounterVec
	EventFailures prometheus.Counter
}

func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "testament_registry_lookups_total",
			Help: "Registry lookups by document kind and result (found, not_found, error)",
		}, []string{"kind", "result"}),
		CacheResults: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "testament_registry_cache_total",
			Help: "Registry cache reads by result (hit, miss, error)",
		}, []string{"result"}),
		RecordsStored: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "testament_registry_records_stored_total",
			Help: "Registry documents stored by kind",
		}, []string{"kind"}),
		EventFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "testament_registry_event_publish_failures_total",
			Help: "Registry events that could not be published",
		}),
	}
}

func (m *Metrics) ObserveLookup(kind, result string) {
	if m == nil {
		return
	}
	m.Lookups.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) ObserveCache(result string) {
	if m == nil {
		return
	}
	m.CacheResults.WithLabelValues(result).Inc()
}

func (m *Metrics) IncrementStored(kind string) {
	if m == nil {
		return
	}
	m.RecordsStored.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncrementEventFailure() {
	if m == nil {
		return
	}
	m.EventFailures.Inc()
}
