package booking

import (
	"context"

	"github.com/andreasstove999/railway-system/booking-service-go/internal/railway"
)

// Store persists orders. WithinTx runs fn in a single transaction that is
// committed when fn returns nil and rolled back otherwise.
type Store interface {
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
	ListOrders(ctx context.Context, userID string, f OrderFilter) ([]Order, error)
	GetOrder(ctx context.Context, userID string, id int64) (Order, error)
}

// Tx is the set of operations available inside an order transaction.
type Tx interface {
	InsertOrder(ctx context.Context, userID string) (Order, error)
	// JourneyTrain returns the train of a journey, or railway.ErrNotFound.
	JourneyTrain(ctx context.Context, journeyID int64) (railway.Train, error)
	SeatTaken(ctx context.Context, journeyID int64, cargo, seat int) (bool, error)
	InsertTicket(ctx context.Context, orderID int64, req TicketRequest) (Ticket, error)
}

// Publisher announces committed orders.
type Publisher interface {
	PublishOrderCreated(ctx context.Context, o Order) error
}
