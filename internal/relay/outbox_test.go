package relay

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testament/pkg/platform/audit/store/postgres"
)

type fakeSource struct {
	entries   []postgres.OutboxEntry
	published []uuid.UUID
}

func (f *fakeSource) PendingOutbox(_ context.Context, limit int) ([]postgres.OutboxEntry, error) {
	var out []postgres.OutboxEntry
	for _, e := range f.entries {
		if f.isPublished(e.ID) {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeSource) MarkPublished(_ context.Context, entryID uuid.UUID) error {
	f.published = append(f.published, entryID)
	return nil
}

func (f *fakeSource) isPublished(entryID uuid.UUID) bool {
	for _, p := range f.published {
		if p == entryID {
			return true
		}
	}
	return false
}

type record struct {
	topic   string
	key     string
	headers map[string]string
}

type fakeProducer struct {
	records []record
	failOn  int
}

func (f *fakeProducer) Publish(_ context.Context, topic string, key, _ []byte, headers map[string]string) error {
	if f.failOn > 0 && len(f.records)+1 == f.failOn {
		return errors.New("broker unavailable")
	}
	f.records = append(f.records, record{topic: topic, key: string(key), headers: headers})
	return nil
}

func entries(n int) []postgres.OutboxEntry {
	out := make([]postgres.OutboxEntry, n)
	for i := range out {
		out[i] = postgres.OutboxEntry{
			ID:          uuid.New(),
			AggregateID: "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			EventType:   "will_funded",
			Payload:     []byte(`{}`),
		}
	}
	return out
}

func TestOutbox_DrainPublishesInOrder(t *testing.T) {
	source := &fakeSource{entries: entries(3)}
	producer := &fakeProducer{}
	metrics := NewMetricsWithRegisterer(prometheus.NewRegistry())
	o := NewOutbox(source, producer, "testament.audit", WithOutboxBatch(2), WithOutboxMetrics(metrics))

	n, err := o.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = o.Drain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.Len(t, producer.records, 3)
	assert.Equal(t, "testament.audit", producer.records[0].topic)
	assert.Equal(t, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", producer.records[0].key)
	assert.Equal(t, "will_funded", producer.records[0].headers[HeaderEventType])
	assert.Equal(t, []uuid.UUID{source.entries[0].ID, source.entries[1].ID, source.entries[2].ID}, source.published)
	assert.Equal(t, 3.0, testutil.ToFloat64(metrics.OutboxPublished))
}

func TestOutbox_StopsAtFirstFailure(t *testing.T) {
	source := &fakeSource{entries: entries(3)}
	producer := &fakeProducer{failOn: 2}
	metrics := NewMetricsWithRegisterer(prometheus.NewRegistry())
	o := NewOutbox(source, producer, "testament.audit", WithOutboxMetrics(metrics))

	n, err := o.Drain(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []uuid.UUID{source.entries[0].ID}, source.published)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.OutboxFailures))
}
