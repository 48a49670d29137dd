package booking

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/railway-system/booking-service-go/internal/railway"
)

var trainColumns = []string{"id", "name", "cargo_num", "places_in_cargo", "tt_id", "tt_name"}

func newMockService(t *testing.T) (pgxmock.PgxPoolIface, *Service) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock, NewService(NewPostgresStore(mock), nil, log.New(io.Discard, "", 0))
}

func expectOrderStart(mock pgxmock.PgxPoolIface, createdAt time.Time) {
	mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.Serializable})
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(10), createdAt))
	mock.ExpectQuery(`FROM journeys j`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(trainColumns).AddRow(int64(3), "InterCity 101", 15, 40, int64(1), "Passenger Express"))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(1), 1, 5).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
}

func TestPostgresStore_CreateOrder(t *testing.T) {
	mock, svc := newMockService(t)
	createdAt := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

	expectOrderStart(mock, createdAt)
	mock.ExpectQuery(`INSERT INTO tickets`).
		WithArgs(1, 5, int64(1), int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(100)))
	mock.ExpectCommit()

	order, err := svc.CreateOrder(context.Background(), "user-1", []TicketRequest{{JourneyID: 1, Cargo: 1, Seat: 5}})
	require.NoError(t, err)
	assert.Equal(t, int64(10), order.ID)
	assert.Equal(t, createdAt, order.CreatedAt)
	require.Len(t, order.Tickets, 1)
	assert.Equal(t, int64(100), order.Tickets[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateOrder_SeatTakenRollsBack(t *testing.T) {
	mock, svc := newMockService(t)

	mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.Serializable})
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(10), time.Now()))
	mock.ExpectQuery(`FROM journeys j`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(trainColumns).AddRow(int64(3), "InterCity 101", 15, 40, int64(1), "Passenger Express"))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs(int64(1), 1, 5).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, err := svc.CreateOrder(context.Background(), "user-1", []TicketRequest{{JourneyID: 1, Cargo: 1, Seat: 5}})
	var taken *SeatTakenError
	require.ErrorAs(t, err, &taken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateOrder_UniqueViolationIsConflict(t *testing.T) {
	mock, svc := newMockService(t)

	expectOrderStart(mock, time.Now())
	mock.ExpectQuery(`INSERT INTO tickets`).
		WithArgs(1, 5, int64(1), int64(10)).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "unique_ticket_cargo_seat_journey"})
	mock.ExpectRollback()

	_, err := svc.CreateOrder(context.Background(), "user-1", []TicketRequest{{JourneyID: 1, Cargo: 1, Seat: 5}})
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, int64(1), conflict.JourneyID)
	assert.Equal(t, 1, conflict.Cargo)
	assert.Equal(t, 5, conflict.Seat)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateOrder_TimeoutsAreConflicts(t *testing.T) {
	tests := map[string]error{
		"lock not available": &pgconn.PgError{Code: pgerrcode.LockNotAvailable},
		"statement timeout":  &pgconn.PgError{Code: pgerrcode.QueryCanceled},
		"context deadline":   context.DeadlineExceeded,
	}

	for name, insertErr := range tests {
		t.Run(name, func(t *testing.T) {
			mock, svc := newMockService(t)

			expectOrderStart(mock, time.Now())
			mock.ExpectQuery(`INSERT INTO tickets`).
				WithArgs(1, 5, int64(1), int64(10)).
				WillReturnError(insertErr)
			mock.ExpectRollback()

			_, err := svc.CreateOrder(context.Background(), "user-1", []TicketRequest{{JourneyID: 1, Cargo: 1, Seat: 5}})
			var conflict *ConflictError
			require.ErrorAs(t, err, &conflict)
			assert.True(t, conflict.Retryable())
			assert.ErrorIs(t, err, insertErr)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostgresStore_CreateOrder_DeadlineAtBegin(t *testing.T) {
	mock, svc := newMockService(t)

	mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.Serializable}).WillReturnError(context.DeadlineExceeded)

	_, err := svc.CreateOrder(context.Background(), "user-1", []TicketRequest{{JourneyID: 1, Cargo: 1, Seat: 5}})
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Zero(t, conflict.Seat)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateOrder_LockTimeoutAtCommit(t *testing.T) {
	mock, svc := newMockService(t)

	expectOrderStart(mock, time.Now())
	mock.ExpectQuery(`INSERT INTO tickets`).
		WithArgs(1, 5, int64(1), int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(100)))
	mock.ExpectCommit().WillReturnError(&pgconn.PgError{Code: pgerrcode.LockNotAvailable})

	_, err := svc.CreateOrder(context.Background(), "user-1", []TicketRequest{{JourneyID: 1, Cargo: 1, Seat: 5}})
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateOrder_OtherErrorsAreNotConflicts(t *testing.T) {
	mock, svc := newMockService(t)

	expectOrderStart(mock, time.Now())
	mock.ExpectQuery(`INSERT INTO tickets`).
		WithArgs(1, 5, int64(1), int64(10)).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.DiskFull})
	mock.ExpectRollback()

	_, err := svc.CreateOrder(context.Background(), "user-1", []TicketRequest{{JourneyID: 1, Cargo: 1, Seat: 5}})
	require.Error(t, err)
	var conflict *ConflictError
	assert.False(t, errors.As(err, &conflict))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateOrder_SerializationFailureAtCommit(t *testing.T) {
	mock, svc := newMockService(t)

	expectOrderStart(mock, time.Now())
	mock.ExpectQuery(`INSERT INTO tickets`).
		WithArgs(1, 5, int64(1), int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(100)))
	mock.ExpectCommit().WillReturnError(&pgconn.PgError{Code: pgerrcode.SerializationFailure})

	_, err := svc.CreateOrder(context.Background(), "user-1", []TicketRequest{{JourneyID: 1, Cargo: 1, Seat: 5}})
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.True(t, conflict.Retryable())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CreateOrder_UnknownJourney(t *testing.T) {
	mock, svc := newMockService(t)

	mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.Serializable})
	mock.ExpectQuery(`INSERT INTO orders`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(int64(10), time.Now()))
	mock.ExpectQuery(`FROM journeys j`).
		WithArgs(int64(77)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := svc.CreateOrder(context.Background(), "user-1", []TicketRequest{{JourneyID: 77, Cargo: 1, Seat: 1}})
	var verr *railway.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "journey", verr.Field)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListOrders(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()
	store := NewPostgresStore(mock)

	after := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	created := after.Add(time.Hour)
	departure := after.Add(24 * time.Hour)

	mock.ExpectQuery(`FROM orders WHERE user_id=\$1 AND created_at >= \$2 ORDER BY created_at DESC`).
		WithArgs("user-1", after).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "created_at"}).AddRow(int64(10), "user-1", created))
	mock.ExpectQuery(`WHERE tk\.order_id = ANY\(\$1\)`).
		WithArgs([]int64{10}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "order_id", "journey_id", "cargo", "seat", "s", "d", "dep", "arr"}).
			AddRow(int64(100), int64(10), int64(1), 1, 5, "Central", "Terminal", departure, departure.Add(time.Hour)))

	orders, err := store.ListOrders(context.Background(), "user-1", OrderFilter{CreatedAfter: &after})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Tickets, 1)
	require.NotNil(t, orders[0].Tickets[0].Journey)
	assert.Equal(t, "Central - Terminal", orders[0].Tickets[0].Journey.Route)
	require.NoError(t, mock.ExpectationsWereMet())
}
