package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/andreasstove999/railway-system/booking-service-go/internal/railway"
)

// PostgresStore runs order transactions at SERIALIZABLE isolation. The
// unique constraint on tickets (cargo, seat, journey_id) settles races the
// in-transaction checks cannot see.
type PostgresStore struct {
	pool railway.DBPool
}

func NewPostgresStore(pool railway.DBPool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) WithinTx(ctx context.Context, fn func(tx Tx) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return mapTxError("begin tx", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&pgTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return mapTxError("commit order", err)
	}
	return nil
}

// mapTxError turns races lost to a concurrent writer, and lock or statement
// timeouts inside the transaction, into ConflictError.
func mapTxError(op string, err error) error {
	if isConflict(err) {
		return &ConflictError{Cause: fmt.Errorf("%s: %w", op, err)}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isConflict(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation,
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected,
		pgerrcode.LockNotAvailable,
		pgerrcode.QueryCanceled:
		return true
	}
	return false
}

type pgTx struct {
	tx pgx.Tx
}

func (t *pgTx) InsertOrder(ctx context.Context, userID string) (Order, error) {
	o := Order{UserID: userID}
	err := t.tx.QueryRow(ctx, `
		INSERT INTO orders (user_id) VALUES ($1) RETURNING id, created_at
	`, userID).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return Order{}, mapTxError("insert order", err)
	}
	return o, nil
}

func (t *pgTx) JourneyTrain(ctx context.Context, journeyID int64) (railway.Train, error) {
	var tr railway.Train
	err := t.tx.QueryRow(ctx, `
		SELECT t.id, t.name, t.cargo_num, t.places_in_cargo, tt.id, tt.name
		FROM journeys j
		JOIN trains t ON t.id = j.train_id
		JOIN train_types tt ON tt.id = t.train_type_id
		WHERE j.id=$1
	`, journeyID).Scan(&tr.ID, &tr.Name, &tr.CargoNum, &tr.PlacesInCargo, &tr.TrainType.ID, &tr.TrainType.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return railway.Train{}, railway.ErrNotFound
		}
		return railway.Train{}, mapTxError("select journey train", err)
	}
	return tr, nil
}

func (t *pgTx) SeatTaken(ctx context.Context, journeyID int64, cargo, seat int) (bool, error) {
	var taken bool
	err := t.tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM tickets WHERE journey_id=$1 AND cargo=$2 AND seat=$3)
	`, journeyID, cargo, seat).Scan(&taken)
	if err != nil {
		return false, mapTxError("select ticket", err)
	}
	return taken, nil
}

func (t *pgTx) InsertTicket(ctx context.Context, orderID int64, req TicketRequest) (Ticket, error) {
	tk := Ticket{OrderID: orderID, JourneyID: req.JourneyID, Cargo: req.Cargo, Seat: req.Seat}
	err := t.tx.QueryRow(ctx, `
		INSERT INTO tickets (cargo, seat, journey_id, order_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, req.Cargo, req.Seat, req.JourneyID, orderID).Scan(&tk.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return Ticket{}, invalidTicket("journey", fmt.Sprintf(`Invalid pk "%d" - object does not exist.`, req.JourneyID))
		}
		if isConflict(err) {
			return Ticket{}, &ConflictError{
				JourneyID: req.JourneyID,
				Cargo:     req.Cargo,
				Seat:      req.Seat,
				Cause:     fmt.Errorf("insert ticket: %w", err),
			}
		}
		return Ticket{}, fmt.Errorf("insert ticket: %w", err)
	}
	return tk, nil
}

const selectOrderTickets = `
	SELECT tk.id, tk.order_id, tk.journey_id, tk.cargo, tk.seat,
	       s.name, d.name, j.departure_time, j.arrival_time
	FROM tickets tk
	JOIN journeys j ON j.id = tk.journey_id
	JOIN routes r ON r.id = j.route_id
	JOIN stations s ON s.id = r.source_id
	JOIN stations d ON d.id = r.destination_id
	WHERE tk.order_id = ANY($1)
	ORDER BY tk.journey_id, tk.cargo, tk.seat`

func (s *PostgresStore) ListOrders(ctx context.Context, userID string, f OrderFilter) ([]Order, error) {
	sql := `SELECT id, user_id, created_at FROM orders WHERE user_id=$1`
	args := []any{userID}
	if f.CreatedAfter != nil {
		args = append(args, *f.CreatedAfter)
		sql += fmt.Sprintf(` AND created_at >= $%d`, len(args))
	}
	if f.CreatedBefore != nil {
		args = append(args, *f.CreatedBefore)
		sql += fmt.Sprintf(` AND created_at <= $%d`, len(args))
	}
	sql += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]int64, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	tickets, err := s.ticketsByOrder(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Tickets = tickets[orders[i].ID]
	}
	return orders, nil
}

func (s *PostgresStore) GetOrder(ctx context.Context, userID string, id int64) (Order, error) {
	var o Order
	err := s.pool.QueryRow(ctx, `
		SELECT id, user_id, created_at FROM orders WHERE id=$1 AND user_id=$2
	`, id, userID).Scan(&o.ID, &o.UserID, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Order{}, railway.ErrNotFound
		}
		return Order{}, fmt.Errorf("select order: %w", err)
	}

	tickets, err := s.ticketsByOrder(ctx, []int64{id})
	if err != nil {
		return Order{}, err
	}
	o.Tickets = tickets[id]
	return o, nil
}

func (s *PostgresStore) ticketsByOrder(ctx context.Context, orderIDs []int64) (map[int64][]Ticket, error) {
	rows, err := s.pool.Query(ctx, selectOrderTickets, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("select tickets: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]Ticket, len(orderIDs))
	for rows.Next() {
		var tk Ticket
		var source, destination string
		j := &JourneySummary{}
		if err := rows.Scan(&tk.ID, &tk.OrderID, &tk.JourneyID, &tk.Cargo, &tk.Seat,
			&source, &destination, &j.DepartureTime, &j.ArrivalTime); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		j.ID = tk.JourneyID
		j.Route = source + " - " + destination
		tk.Journey = j
		out[tk.OrderID] = append(out[tk.OrderID], tk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}
