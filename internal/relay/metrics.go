package relay

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts what the relay did on its own initiative.
type Metrics struct {
	Confirmations   *prometheus.CounterVec
	Settlements     *prometheus.CounterVec
	OutboxPublished prometheus.Counter
	OutboxFailures  prometheus.Counter
}

func NewMetrics() *Metrics {
	return NewMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func NewMetricsWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Confirmations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "testament_relay_confirmations_total",
			Help: "Registry records routed to wills by kind and result (transitioned, skipped, no_will, error)",
		}, []string{"kind", "result"}),
		Settlements: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "testament_relay_settlements_total",
			Help: "Automatic estate distributions by result",
		}, []string{"result"}),
		OutboxPublished: factory.NewCounter(prometheus.CounterOpts{
			Name: "testament_relay_outbox_published_total",
			Help: "Audit outbox entries published to Kafka",
		}),
		OutboxFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "testament_relay_outbox_failures_total",
			Help: "Audit outbox entries that failed to publish",
		}),
	}
}

func (m *Metrics) IncrementConfirmation(kind, result string) {
	if m == nil {
		return
	}
	m.Confirmations.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) IncrementSettlement(ok bool) {
	if m == nil {
		return
	}
	result := "distributed"
	if !ok {
		result = "failed"
	}
	m.Settlements.WithLabelValues(result).Inc()
}

func (m *Metrics) IncrementOutboxPublished() {
	if m == nil {
		return
	}
	m.OutboxPublished.Inc()
}

func (m *Metrics) IncrementOutboxFailure() {
	if m == nil {
		return
	}
	m.OutboxFailures.Inc()
}
