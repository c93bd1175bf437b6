// Package events is the registry's outbound event contract. The relay
// consumes the same types.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	id "testament/pkg/domain"
)

type Type string

const (
	TypeDeathRecorded  Type = "death_recorded"
	TypeProbateGranted Type = "probate_granted"
)

// HeaderEventType carries the event type so consumers can route without
// decoding the payload.
const HeaderEventType = "event_type"

// Event announces that a registry document was stored. Date is the date of
// death or of the grant.
type Event struct {
	Type       Type          `json:"type"`
	NationalID id.NationalID `json:"national_id"`
	Date       time.Time     `json:"date"`
	RecordedAt time.Time     `json:"recorded_at"`
}

// Encode returns the partition key (the national id) and JSON payload.
func (e Event) Encode() ([]byte, []byte, error) {
	value, err := json.Marshal(e)
	if err != nil {
		return nil, nil, fmt.Errorf("encode registry event: %w", err)
	}
	return []byte(e.NationalID.String()), value, nil
}

// Decode parses a payload produced by Encode.
func Decode(value []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(value, &e); err != nil {
		return Event{}, fmt.Errorf("decode registry event: %w", err)
	}
	switch e.Type {
	case TypeDeathRecorded, TypeProbateGranted:
	default:
		return Event{}, fmt.Errorf("unknown registry event type %q", e.Type)
	}
	if e.NationalID.IsNil() {
		return Event{}, fmt.Errorf("registry event missing national id")
	}
	return e, nil
}

// Publisher delivers registry events.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Producer is the transport the Kafka publisher writes through.
type Producer interface {
	Publish(ctx context.Context, topic string, key, value []byte, headers map[string]string) error
}

type KafkaPublisher struct {
	producer Producer
	topic    string
}

func NewKafkaPublisher(producer Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	key, value, err := e.Encode()
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, p.topic, key, value, map[string]string{HeaderEventType: string(e.Type)})
}

// NopPublisher drops events; used when Kafka is not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
