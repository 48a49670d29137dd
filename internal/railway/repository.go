package railway

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBPool matches the methods from *pgxpool.Pool that we use.
// This allows us to mock the database in tests.
type DBPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

type TrainTypeRepository interface {
	ListTrainTypes(ctx context.Context, f SearchFilter) ([]TrainType, error)
	GetTrainType(ctx context.Context, id int64) (TrainType, error)
	CreateTrainType(ctx context.Context, in TrainTypeInput) (TrainType, error)
	UpdateTrainType(ctx context.Context, id int64, in TrainTypeInput) (TrainType, error)
	DeleteTrainType(ctx context.Context, id int64) error
}

type TrainRepository interface {
	ListTrains(ctx context.Context, f TrainFilter) ([]Train, error)
	GetTrain(ctx context.Context, id int64) (Train, error)
	CreateTrain(ctx context.Context, in TrainInput) (Train, error)
	UpdateTrain(ctx context.Context, id int64, in TrainInput) (Train, error)
	DeleteTrain(ctx context.Context, id int64) error
}

type StationRepository interface {
	ListStations(ctx context.Context, f SearchFilter) ([]Station, error)
	GetStation(ctx context.Context, id int64) (Station, error)
	CreateStation(ctx context.Context, in StationInput) (Station, error)
	UpdateStation(ctx context.Context, id int64, in StationInput) (Station, error)
	DeleteStation(ctx context.Context, id int64) error
}

type RouteRepository interface {
	ListRoutes(ctx context.Context, f RouteFilter) ([]Route, error)
	GetRoute(ctx context.Context, id int64) (Route, error)
	CreateRoute(ctx context.Context, in RouteInput) (Route, error)
	UpdateRoute(ctx context.Context, id int64, in RouteInput) (Route, error)
	DeleteRoute(ctx context.Context, id int64) error
}

type CrewRepository interface {
	ListCrews(ctx context.Context, f SearchFilter) ([]Crew, error)
	GetCrew(ctx context.Context, id int64) (Crew, error)
	CreateCrew(ctx context.Context, in CrewInput) (Crew, error)
	UpdateCrew(ctx context.Context, id int64, in CrewInput) (Crew, error)
	DeleteCrew(ctx context.Context, id int64) error
}

type JourneyRepository interface {
	ListJourneys(ctx context.Context, f JourneyFilter) ([]Journey, error)
	GetJourney(ctx context.Context, id int64) (Journey, error)
	CreateJourney(ctx context.Context, in JourneyInput) (Journey, error)
	UpdateJourney(ctx context.Context, id int64, in JourneyInput) (Journey, error)
	DeleteJourney(ctx context.Context, id int64) error
}

type PostgresRepository struct {
	pool DBPool
}

func NewPostgresRepository(pool DBPool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const invalidReference = "Invalid pk - object does not exist."

type constraintField struct {
	field   string
	message string
}

// constraintFields maps schema constraint names back to the request field a
// client has to fix.
var constraintFields = map[string]constraintField{
	"trains_train_type_id_fkey":        {"train_type", invalidReference},
	"stations_name_key":                {"name", "station with this name already exists."},
	"routes_source_id_fkey":            {"source", invalidReference},
	"routes_destination_id_fkey":       {"destination", invalidReference},
	"routes_distinct_stations":         {"destination", "Source and destination stations must be different"},
	"journeys_route_id_fkey":           {"route", invalidReference},
	"journeys_train_id_fkey":           {"train", invalidReference},
	"journey_crew_crew_id_fkey":        {"crew", invalidReference},
	"journeys_arrival_after_departure": {"arrival_time", "Arrival time must be after departure time"},
}

func mapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.ForeignKeyViolation, pgerrcode.UniqueViolation, pgerrcode.CheckViolation:
			if f, ok := constraintFields[pgErr.ConstraintName]; ok {
				return invalid(f.field, f.message)
			}
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func mapReadError(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (r *PostgresRepository) deleteByID(ctx context.Context, table string, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM `+table+` WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
