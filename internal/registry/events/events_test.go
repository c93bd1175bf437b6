package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "testament/pkg/domain"
)

type captureProducer struct {
	topic   string
	key     []byte
	value   []byte
	headers map[string]string
}

func (c *captureProducer) Publish(_ context.Context, topic string, key, value []byte, headers map[string]string) error {
	c.topic, c.key, c.value, c.headers = topic, key, value, headers
	return nil
}

func TestKafkaPublisher(t *testing.T) {
	p := &captureProducer{}
	pub := NewKafkaPublisher(p, "registry-events")
	e := Event{
		Type:       TypeDeathRecorded,
		NationalID: id.NationalID("S7654321B"),
		Date:       time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		RecordedAt: time.Date(2026, 3, 1, 9, 5, 0, 0, time.UTC),
	}

	require.NoError(t, pub.Publish(context.Background(), e))

	assert.Equal(t, "registry-events", p.topic)
	assert.Equal(t, "S7654321B", string(p.key))
	assert.Equal(t, "death_recorded", p.headers[HeaderEventType])

	decoded, err := Decode(p.value)
	require.NoError(t, err)
	assert.Equal(t, e.NationalID, decoded.NationalID)
	assert.True(t, e.Date.Equal(decoded.Date))
}

func TestDecodeRejects(t *testing.T) {
	for name, payload := range map[string]string{
		"malformed":      `{`,
		"unknown type":   `{"type":"birth_recorded","national_id":"S7654321B"}`,
		"no national id": `{"type":"probate_granted"}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(payload))
			assert.Error(t, err)
		})
	}
}
