package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/andreasstove999/railway-system/booking-service-go/internal/booking"
	"github.com/andreasstove999/railway-system/booking-service-go/internal/middleware"
	"github.com/andreasstove999/railway-system/booking-service-go/internal/sequence"
)

const publishTimeout = 3 * time.Second

// channel is the part of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher emits booking events to the topic exchange.
type Publisher struct {
	ch       channel
	seqRepo  sequence.Repository
	producer string
}

func NewPublisher(conn *amqp.Connection, seqRepo sequence.Repository) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := declareEventsExchange(ch); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare events exchange: %w", err)
	}
	return newPublisher(ch, seqRepo), nil
}

func newPublisher(ch channel, seqRepo sequence.Repository) *Publisher {
	return &Publisher{ch: ch, seqRepo: seqRepo, producer: producerName}
}

func (p *Publisher) Close() error {
	return p.ch.Close()
}

// PublishOrderCreated implements booking.Publisher.
func (p *Publisher) PublishOrderCreated(ctx context.Context, o booking.Order) error {
	seq, err := p.seqRepo.NextSequence(ctx, orderPartitionKey(o.ID))
	if err != nil {
		return fmt.Errorf("reserve sequence: %w", err)
	}

	meta := EnvelopeMetadata{CorrelationID: middleware.GetCorrelationID(ctx)}
	ev := newOrderCreatedEvent(meta, seq, p.producer, o, time.Now().UTC())
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal OrderCreated: %w", err)
	}
	return p.publishJSON(ctx, OrderCreatedRoutingKey, ev.EventID, body)
}

func (p *Publisher) publishJSON(ctx context.Context, routingKey, messageID string, body []byte) error {
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    messageID,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}
