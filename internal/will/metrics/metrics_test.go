package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())

	m.IncrementWillCreated()
	m.IncrementLedgerMutation("add_beneficiaries")
	m.IncrementLedgerMutation("add_beneficiaries")
	m.IncrementConfirmation("death", false)
	m.IncrementDistribution("asset", true)
	m.AddDigitalPaidOut(97)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.WillsCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LedgerMutations.WithLabelValues("add_beneficiaries")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Confirmations.WithLabelValues("death", "skipped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Distributions.WithLabelValues("asset", "executed")))
	assert.Equal(t, 97.0, testutil.ToFloat64(m.DigitalPaidOut))
}
