package booking

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/andreasstove999/railway-system/booking-service-go/internal/railway"
)

// Service books tickets. Every order is created in one transaction: either
// the order and all of its tickets are stored, or nothing is.
type Service struct {
	store     Store
	publisher Publisher
	logger    *log.Logger
}

// NewService wires a booking service. publisher may be nil when event
// publishing is disabled.
func NewService(store Store, publisher Publisher, logger *log.Logger) *Service {
	return &Service{store: store, publisher: publisher, logger: logger}
}

// CreateOrder books the requested places for userID. Requests are checked
// left to right and the first failure aborts the whole order.
func (s *Service) CreateOrder(ctx context.Context, userID string, reqs []TicketRequest) (Order, error) {
	if len(reqs) == 0 {
		return Order{}, invalidTicket("tickets", "Order must contain at least one ticket.")
	}

	var created Order
	err := s.store.WithinTx(ctx, func(tx Tx) error {
		order, err := tx.InsertOrder(ctx, userID)
		if err != nil {
			return err
		}

		trains := make(map[int64]railway.Train)
		claimed := batch{}
		order.Tickets = make([]Ticket, 0, len(reqs))

		for _, req := range reqs {
			train, ok := trains[req.JourneyID]
			if !ok {
				train, err = tx.JourneyTrain(ctx, req.JourneyID)
				if errors.Is(err, railway.ErrNotFound) {
					return invalidTicket("journey", fmt.Sprintf(`Invalid pk "%d" - object does not exist.`, req.JourneyID))
				}
				if err != nil {
					return err
				}
				trains[req.JourneyID] = train
			}

			if err := ValidatePlace(train, req.Cargo, req.Seat); err != nil {
				return err
			}
			if err := claimed.claim(req); err != nil {
				return err
			}

			taken, err := tx.SeatTaken(ctx, req.JourneyID, req.Cargo, req.Seat)
			if err != nil {
				return err
			}
			if taken {
				return &SeatTakenError{JourneyID: req.JourneyID, Cargo: req.Cargo, Seat: req.Seat}
			}

			ticket, err := tx.InsertTicket(ctx, order.ID, req)
			if err != nil {
				return err
			}
			order.Tickets = append(order.Tickets, ticket)
		}

		created = order
		return nil
	})
	if err != nil {
		return Order{}, err
	}

	s.logger.Printf("order created order=%d user=%s tickets=%d", created.ID, created.UserID, len(created.Tickets))

	if s.publisher != nil {
		if err := s.publisher.PublishOrderCreated(ctx, created); err != nil {
			s.logger.Printf("publish OrderCreated failed order=%d: %v", created.ID, err)
		}
	}
	return created, nil
}

// ListOrders returns the orders owned by userID, newest first.
func (s *Service) ListOrders(ctx context.Context, userID string, f OrderFilter) ([]Order, error) {
	return s.store.ListOrders(ctx, userID, f)
}

// GetOrder returns one order of userID; orders of other users are reported
// as railway.ErrNotFound.
func (s *Service) GetOrder(ctx context.Context, userID string, id int64) (Order, error) {
	return s.store.GetOrder(ctx, userID, id)
}
