package booking

import "time"

// TicketRequest is one requested place in an order.
type TicketRequest struct {
	JourneyID int64 `json:"journey"`
	Cargo     int   `json:"cargo"`
	Seat      int   `json:"seat"`
}

type Order struct {
	ID        int64
	UserID    string
	CreatedAt time.Time
	Tickets   []Ticket
}

type Ticket struct {
	ID        int64
	OrderID   int64
	JourneyID int64
	Cargo     int
	Seat      int

	// Journey is filled when orders are read back, not on creation.
	Journey *JourneySummary
}

// JourneySummary is the journey context shown next to a ticket.
type JourneySummary struct {
	ID            int64
	Route         string
	DepartureTime time.Time
	ArrivalTime   time.Time
}

type OrderFilter struct {
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}
