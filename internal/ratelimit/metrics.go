package ratelimit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Decisions *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return NewMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func NewMetricsWithRegisterer(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Decisions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "testament_ratelimit_decisions_total",
			Help: "Rate limit decisions by class and result (allowed, rejected, error)",
		}, []string{"class", "result"}),
	}
}

func (m *Metrics) ObserveDecision(class Class, result string) {
	if m == nil {
		return
	}
	m.Decisions.WithLabelValues(string(class), result).Inc()
}
