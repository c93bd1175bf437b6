package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the will module.
// Tracks ledger activity, lifecycle confirmations and distribution outcomes.
type Metrics struct {
	WillsCreated         prometheus.Counter
	LedgerMutations      *prometheus.CounterVec
	Confirmations        *prometheus.CounterVec
	Distributions        *prometheus.CounterVec
	DigitalPaidOut       prometheus.Counter
	DistributionDuration prometheus.Histogram
}

// New creates a new Metrics instance registered on the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers the will metrics on reg. Tests pass a fresh
// prometheus.NewRegistry to avoid duplicate registration.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		WillsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "testament_wills_created_total",
			Help: "Total number of wills created",
		}),
		LedgerMutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "testament_ledger_mutations_total",
			Help: "Successful allocation ledger mutations by operation",
		}, []string{"operation"}),
		Confirmations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "testament_confirmations_total",
			Help: "Registry confirmations by kind and outcome (transitioned, skipped)",
		}, []string{"kind", "outcome"}),
		Distributions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "testament_distributions_total",
			Help: "Distributions by kind (digital, asset) and outcome (executed, skipped)",
		}, []string{"kind", "outcome"}),
		DigitalPaidOut: factory.NewCounter(prometheus.CounterOpts{
			Name: "testament_digital_paid_out_wei_total",
			Help: "Sum of digital payouts credited to beneficiaries, in the smallest currency unit",
		}),
		DistributionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "testament_distribution_duration_seconds",
			Help:    "Duration of distribution operations including the store transaction",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) IncrementWillCreated() {
	m.WillsCreated.Inc()
}

func (m *Metrics) IncrementLedgerMutation(operation string) {
	m.LedgerMutations.WithLabelValues(operation).Inc()
}

// IncrementConfirmation records a confirmation attempt. kind is "death" or
// "probate"; transitioned=false counts a soft no-op.
func (m *Metrics) IncrementConfirmation(kind string, transitioned bool) {
	m.Confirmations.WithLabelValues(kind, outcomeLabel(transitioned)).Inc()
}

func (m *Metrics) IncrementDistribution(kind string, executed bool) {
	m.Distributions.WithLabelValues(kind, outcomeLabel(executed)).Inc()
}

func (m *Metrics) AddDigitalPaidOut(amount int64) {
	m.DigitalPaidOut.Add(float64(amount))
}

// ObserveDistribution records the duration of a distribution operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveDistribution(start time.Time) {
	m.DistributionDuration.Observe(time.Since(start).Seconds())
}

func outcomeLabel(ok bool) string {
	if ok {
		return "executed"
	}
	return "skipped"
}
