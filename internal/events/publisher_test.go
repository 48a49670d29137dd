package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/railway-system/booking-service-go/internal/booking"
	"github.com/andreasstove999/railway-system/booking-service-go/internal/middleware"
)

type published struct {
	exchange string
	key      string
	msg      amqp.Publishing
}

type fakeChannel struct {
	published []published
	err       error
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, published{exchange: exchange, key: key, msg: msg})
	return nil
}

func (f *fakeChannel) Close() error { return nil }

type fakeSequences struct {
	last map[string]int64
	err  error
}

func (f *fakeSequences) NextSequence(_ context.Context, partitionKey string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	if f.last == nil {
		f.last = map[string]int64{}
	}
	f.last[partitionKey]++
	return f.last[partitionKey], nil
}

func testOrder() booking.Order {
	return booking.Order{
		ID:        10,
		UserID:    "user-1",
		CreatedAt: time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC),
		Tickets: []booking.Ticket{
			{ID: 100, OrderID: 10, JourneyID: 1, Cargo: 1, Seat: 5},
			{ID: 101, OrderID: 10, JourneyID: 1, Cargo: 1, Seat: 6},
		},
	}
}

func TestPublisher_PublishOrderCreated(t *testing.T) {
	ch := &fakeChannel{}
	seqs := &fakeSequences{}
	p := newPublisher(ch, seqs)

	ctx := middleware.WithCorrelationID(context.Background(), "cid-1")
	require.NoError(t, p.PublishOrderCreated(ctx, testOrder()))

	require.Len(t, ch.published, 1)
	got := ch.published[0]
	assert.Equal(t, EventsExchange, got.exchange)
	assert.Equal(t, OrderCreatedRoutingKey, got.key)
	assert.Equal(t, "application/json", got.msg.ContentType)
	assert.Equal(t, amqp.Persistent, got.msg.DeliveryMode)

	var ev OrderCreatedEvent
	require.NoError(t, json.Unmarshal(got.msg.Body, &ev))
	assert.Equal(t, EventTypeOrderCreated, ev.EventName)
	assert.Equal(t, 1, ev.EventVersion)
	assert.Equal(t, "order-10", ev.PartitionKey)
	assert.Equal(t, "cid-1", ev.CorrelationID)
	assert.Equal(t, producerName, ev.Producer)
	assert.Equal(t, "railway://contracts/events/order-created/v1.json", ev.Schema)
	assert.Equal(t, got.msg.MessageId, ev.EventID)
	require.NotNil(t, ev.Sequence)
	assert.Equal(t, int64(1), *ev.Sequence)
	assert.Equal(t, int64(10), ev.Payload.OrderID)
	assert.Len(t, ev.Payload.Tickets, 2)
	assert.Equal(t, 6, ev.Payload.Tickets[1].Seat)
}

func TestPublisher_SequenceFailure(t *testing.T) {
	ch := &fakeChannel{}
	p := newPublisher(ch, &fakeSequences{err: errors.New("db down")})

	err := p.PublishOrderCreated(context.Background(), testOrder())
	require.Error(t, err)
	assert.Empty(t, ch.published)
}

func TestSeal(t *testing.T) {
	occurred := time.Date(2025, 9, 1, 14, 0, 0, 0, time.FixedZone("CEST", 2*60*60))
	meta := EnvelopeMetadata{CorrelationID: "cid-1", CausationID: "req-1"}

	ev := seal(orderCreatedV1, meta, "", "order-10", 4, occurred, OrderCreatedPayload{OrderID: 10})
	assert.Equal(t, producerName, ev.Producer)
	assert.Equal(t, "railway://contracts/events/order-created/v1.json", ev.Schema)
	assert.Equal(t, "cid-1", ev.CorrelationID)
	assert.Equal(t, "req-1", ev.CausationID)
	assert.Equal(t, time.UTC, ev.OccurredAt.Location())
	assert.True(t, ev.OccurredAt.Equal(occurred))
	require.NotNil(t, ev.Sequence)
	assert.Equal(t, int64(4), *ev.Sequence)
	assert.NotEmpty(t, ev.EventID)

	other := seal(eventType{name: "OrderCreated", slug: "order-created", version: 2}, meta, "replayer", "order-10", 5, occurred, OrderCreatedPayload{})
	assert.Equal(t, "replayer", other.Producer)
	assert.Equal(t, "railway://contracts/events/order-created/v2.json", other.Schema)
	assert.NotEqual(t, ev.EventID, other.EventID)
}
