//go:build integration

package kafka_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testament/internal/platform/kafka"
	"testament/internal/platform/kafka/consumer"
	"testament/internal/platform/kafka/producer"
	"testament/pkg/testutil/containers"
)

func TestProduceConsumeRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	brokers := []string{containers.GetManager().GetRedpanda(t).Broker}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	const topic = "registry-events"
	require.NoError(t, kafka.EnsureTopics(ctx, brokers, 1, 1, topic))
	require.NoError(t, kafka.EnsureTopics(ctx, brokers, 1, 1, topic), "second call is a no-op")

	p, err := producer.New(brokers, logger)
	require.NoError(t, err)
	defer p.Close()
	require.NoError(t, p.Publish(ctx, topic, []byte("S7654321B"), []byte(`{"type":"death_recorded"}`), map[string]string{"event_type": "death_recorded"}))

	var (
		mu  sync.Mutex
		got []*consumer.Message
	)
	received := make(chan struct{})
	c, err := consumer.New(consumer.Config{Brokers: brokers, Group: "test", Topics: []string{topic}},
		consumer.HandlerFunc(func(_ context.Context, msg *consumer.Message) error {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, msg)
			if len(got) == 1 {
				close(received)
			}
			return nil
		}), logger)
	require.NoError(t, err)

	runCtx, stop := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- c.Run(runCtx) }()

	select {
	case <-received:
	case <-ctx.Done():
		t.Fatal("timed out waiting for message")
	}
	stop()
	require.NoError(t, <-done)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "S7654321B", string(got[0].Key))
	assert.Equal(t, "death_recorded", got[0].Headers["event_type"])
}
