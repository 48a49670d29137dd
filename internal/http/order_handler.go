package httpapi

import (
	"context"
	"log"
	"net/http"

	"github.com/andreasstove999/railway-system/booking-service-go/internal/auth"
	"github.com/andreasstove999/railway-system/booking-service-go/internal/booking"
	"github.com/andreasstove999/railway-system/booking-service-go/internal/railway"
)

// Bookings is implemented by *booking.Service.
type Bookings interface {
	CreateOrder(ctx context.Context, userID string, reqs []booking.TicketRequest) (booking.Order, error)
	ListOrders(ctx context.Context, userID string, f booking.OrderFilter) ([]booking.Order, error)
	GetOrder(ctx context.Context, userID string, id int64) (booking.Order, error)
}

type OrderHandler struct {
	bookings Bookings
	logger   *log.Logger
}

func NewOrderHandler(bookings Bookings, logger *log.Logger) *OrderHandler {
	return &OrderHandler{bookings: bookings, logger: logger}
}

type createOrderRequest struct {
	Tickets []ticketRequest `json:"tickets"`
}

// ticketRequest keeps absent fields apart from zero values, so a missing
// seat is reported as required rather than out of range.
type ticketRequest struct {
	Journey *int64 `json:"journey"`
	Cargo   *int   `json:"cargo"`
	Seat    *int   `json:"seat"`
}

func (req createOrderRequest) tickets() ([]booking.TicketRequest, error) {
	out := make([]booking.TicketRequest, 0, len(req.Tickets))
	for _, tk := range req.Tickets {
		switch {
		case tk.Journey == nil:
			return nil, railway.Required("journey")
		case tk.Cargo == nil:
			return nil, railway.Required("cargo")
		case tk.Seat == nil:
			return nil, railway.Required("seat")
		}
		out = append(out, booking.TicketRequest{JourneyID: *tk.Journey, Cargo: *tk.Cargo, Seat: *tk.Seat})
	}
	return out, nil
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	tickets, err := req.tickets()
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	id := auth.FromContext(r.Context())
	o, err := h.bookings.CreateOrder(r.Context(), id.UserID, tickets)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, shapeOrderCreated(o))
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	f, err := orderFilter(r)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}

	id := auth.FromContext(r.Context())
	orders, err := h.bookings.ListOrders(r.Context(), id.UserID, f)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, shapeList(orders, shapeOrder))
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := pathID(w, r)
	if !ok {
		return
	}

	id := auth.FromContext(r.Context())
	o, err := h.bookings.GetOrder(r.Context(), id.UserID, orderID)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, shapeOrder(o))
}
