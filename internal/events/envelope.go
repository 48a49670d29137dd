package events

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const schemaBase = "railway://contracts/events/"

// EventEnvelope wraps every event published to the railway.events exchange.
// Consumers order events of one partition by Sequence.
type EventEnvelope[T any] struct {
	EventName     string    `json:"eventName"`
	EventVersion  int       `json:"eventVersion"`
	EventID       string    `json:"eventId"`
	CorrelationID string    `json:"correlationId,omitempty"`
	CausationID   string    `json:"causationId,omitempty"`
	Producer      string    `json:"producer"`
	PartitionKey  string    `json:"partitionKey"`
	Sequence      *int64    `json:"sequence,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
	Schema        string    `json:"schema"`
	Payload       T         `json:"payload"`
}

// EnvelopeMetadata carries the request context an event was caused by.
type EnvelopeMetadata struct {
	CorrelationID string
	CausationID   string
}

// eventType names one versioned event contract.
type eventType struct {
	name    string
	slug    string
	version int
}

func (et eventType) schema() string {
	return fmt.Sprintf("%s%s/v%d.json", schemaBase, et.slug, et.version)
}

// seal builds the envelope for payload. An empty producer defaults to this
// service.
func seal[T any](et eventType, meta EnvelopeMetadata, producer, partitionKey string, seq int64, occurredAt time.Time, payload T) EventEnvelope[T] {
	if producer == "" {
		producer = producerName
	}
	return EventEnvelope[T]{
		EventName:     et.name,
		EventVersion:  et.version,
		EventID:       uuid.NewString(),
		CorrelationID: meta.CorrelationID,
		CausationID:   meta.CausationID,
		Producer:      producer,
		PartitionKey:  partitionKey,
		Sequence:      &seq,
		OccurredAt:    occurredAt.UTC(),
		Schema:        et.schema(),
		Payload:       payload,
	}
}
