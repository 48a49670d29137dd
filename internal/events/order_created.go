package events

import (
	"strconv"
	"time"

	"github.com/andreasstove999/railway-system/booking-service-go/internal/booking"
)

const EventTypeOrderCreated = "OrderCreated"

var orderCreatedV1 = eventType{name: EventTypeOrderCreated, slug: "order-created", version: 1}

type OrderCreatedPayload struct {
	OrderID   int64                `json:"orderId"`
	UserID    string               `json:"userId"`
	CreatedAt time.Time            `json:"createdAt"`
	Tickets   []OrderTicketPayload `json:"tickets"`
}

type OrderTicketPayload struct {
	TicketID  int64 `json:"ticketId"`
	JourneyID int64 `json:"journeyId"`
	Cargo     int   `json:"cargo"`
	Seat      int   `json:"seat"`
}

type OrderCreatedEvent = EventEnvelope[OrderCreatedPayload]

func orderPartitionKey(orderID int64) string {
	return "order-" + strconv.FormatInt(orderID, 10)
}

func newOrderCreatedEvent(meta EnvelopeMetadata, seq int64, producer string, o booking.Order, occurredAt time.Time) OrderCreatedEvent {
	payload := OrderCreatedPayload{
		OrderID:   o.ID,
		UserID:    o.UserID,
		CreatedAt: o.CreatedAt,
		Tickets:   make([]OrderTicketPayload, 0, len(o.Tickets)),
	}
	for _, tk := range o.Tickets {
		payload.Tickets = append(payload.Tickets, OrderTicketPayload{
			TicketID:  tk.ID,
			JourneyID: tk.JourneyID,
			Cargo:     tk.Cargo,
			Seat:      tk.Seat,
		})
	}

	return seal(orderCreatedV1, meta, producer, orderPartitionKey(o.ID), seq, occurredAt, payload)
}
