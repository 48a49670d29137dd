package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/andreasstove999/railway-system/booking-service-go/internal/railway"
)

// memStore is an in-memory Store. Commits re-check ticket uniqueness under
// the lock, the way the database unique constraint does.
type memStore struct {
	mu         sync.Mutex
	trains     map[int64]railway.Train // keyed by journey id
	orders     []Order
	tickets    map[seatKey]Ticket
	nextOrder  int64
	nextTicket int64

	// beforeCommit, when set, runs after fn succeeded and before commit.
	beforeCommit func()
}

func newMemStore(trains map[int64]railway.Train) *memStore {
	return &memStore{trains: trains, tickets: map[seatKey]Ticket{}}
}

func (m *memStore) WithinTx(ctx context.Context, fn func(tx Tx) error) error {
	tx := &memTx{store: m}
	if err := fn(tx); err != nil {
		return err
	}
	if m.beforeCommit != nil {
		m.beforeCommit()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, tk := range tx.tickets {
		if _, exists := m.tickets[keyOf(tk)]; exists {
			return &ConflictError{Cause: errors.New("duplicate key value violates unique constraint")}
		}
	}
	for _, tk := range tx.tickets {
		m.tickets[keyOf(tk)] = tk
	}
	tx.order.Tickets = tx.tickets
	m.orders = append(m.orders, tx.order)
	return nil
}

func (m *memStore) ListOrders(_ context.Context, userID string, _ OrderFilter) ([]Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Order{}
	for i := len(m.orders) - 1; i >= 0; i-- {
		if m.orders[i].UserID == userID {
			out = append(out, m.orders[i])
		}
	}
	return out, nil
}

func (m *memStore) GetOrder(_ context.Context, userID string, id int64) (Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.ID == id && o.UserID == userID {
			return o, nil
		}
	}
	return Order{}, railway.ErrNotFound
}

func (m *memStore) orderCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.orders)
}

func (m *memStore) ticketCount(journeyID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for k := range m.tickets {
		if k.journeyID == journeyID {
			n++
		}
	}
	return n
}

func keyOf(tk Ticket) seatKey {
	return seatKey{journeyID: tk.JourneyID, cargo: tk.Cargo, seat: tk.Seat}
}

type memTx struct {
	store   *memStore
	order   Order
	tickets []Ticket
}

func (t *memTx) InsertOrder(_ context.Context, userID string) (Order, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	t.store.nextOrder++
	t.order = Order{ID: t.store.nextOrder, UserID: userID, CreatedAt: time.Now().UTC()}
	return t.order, nil
}

func (t *memTx) JourneyTrain(_ context.Context, journeyID int64) (railway.Train, error) {
	train, ok := t.store.trains[journeyID]
	if !ok {
		return railway.Train{}, railway.ErrNotFound
	}
	return train, nil
}

func (t *memTx) SeatTaken(_ context.Context, journeyID int64, cargo, seat int) (bool, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	_, taken := t.store.tickets[seatKey{journeyID: journeyID, cargo: cargo, seat: seat}]
	return taken, nil
}

func (t *memTx) InsertTicket(_ context.Context, orderID int64, req TicketRequest) (Ticket, error) {
	t.store.mu.Lock()
	t.store.nextTicket++
	id := t.store.nextTicket
	t.store.mu.Unlock()

	tk := Ticket{ID: id, OrderID: orderID, JourneyID: req.JourneyID, Cargo: req.Cargo, Seat: req.Seat}
	t.tickets = append(t.tickets, tk)
	return tk, nil
}

type recordingPublisher struct {
	mu        sync.Mutex
	published []Order
	err       error
}

func (p *recordingPublisher) PublishOrderCreated(_ context.Context, o Order) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, o)
	return nil
}
