package railway

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

func (r *PostgresRepository) ListCrews(ctx context.Context, f SearchFilter) ([]Crew, error) {
	var c conditions
	c.contains(`(first_name ILIKE ? OR last_name ILIKE ?)`, f.Search)

	rows, err := r.pool.Query(ctx, `SELECT id, first_name, last_name FROM crews`+c.where()+` ORDER BY id`, c.args...)
	if err != nil {
		return nil, fmt.Errorf("select crews: %w", err)
	}
	defer rows.Close()

	crews := []Crew{}
	for rows.Next() {
		var cr Crew
		if err := rows.Scan(&cr.ID, &cr.FirstName, &cr.LastName); err != nil {
			return nil, fmt.Errorf("scan crew: %w", err)
		}
		crews = append(crews, cr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return crews, nil
}

func (r *PostgresRepository) GetCrew(ctx context.Context, id int64) (Crew, error) {
	var cr Crew
	err := r.pool.QueryRow(ctx, `SELECT id, first_name, last_name FROM crews WHERE id=$1`, id).
		Scan(&cr.ID, &cr.FirstName, &cr.LastName)
	if err != nil {
		return Crew{}, mapReadError("select crew", err)
	}
	return cr, nil
}

func (r *PostgresRepository) CreateCrew(ctx context.Context, in CrewInput) (Crew, error) {
	if err := in.Validate(); err != nil {
		return Crew{}, err
	}
	cr := Crew{FirstName: in.FirstName, LastName: in.LastName}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO crews (first_name, last_name) VALUES ($1, $2) RETURNING id
	`, in.FirstName, in.LastName).Scan(&cr.ID)
	if err != nil {
		return Crew{}, mapWriteError("insert crew", err)
	}
	return cr, nil
}

func (r *PostgresRepository) UpdateCrew(ctx context.Context, id int64, in CrewInput) (Crew, error) {
	if err := in.Validate(); err != nil {
		return Crew{}, err
	}
	tag, err := r.pool.Exec(ctx, `UPDATE crews SET first_name=$2, last_name=$3 WHERE id=$1`, id, in.FirstName, in.LastName)
	if err != nil {
		return Crew{}, mapWriteError("update crew", err)
	}
	if tag.RowsAffected() == 0 {
		return Crew{}, ErrNotFound
	}
	return Crew{ID: id, FirstName: in.FirstName, LastName: in.LastName}, nil
}

func (r *PostgresRepository) DeleteCrew(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "crews", id)
}

const selectJourney = `
	SELECT j.id, j.departure_time, j.arrival_time,
	       r.id, r.distance,
	       s.id, s.name, s.latitude, s.longitude,
	       d.id, d.name, d.latitude, d.longitude,
	       t.id, t.name, t.cargo_num, t.places_in_cargo,
	       tt.id, tt.name,
	       (SELECT COUNT(*) FROM tickets tk WHERE tk.journey_id = j.id) AS tickets_booked
	FROM journeys j
	JOIN routes r ON r.id = j.route_id
	JOIN stations s ON s.id = r.source_id
	JOIN stations d ON d.id = r.destination_id
	JOIN trains t ON t.id = j.train_id
	JOIN train_types tt ON tt.id = t.train_type_id`

func scanJourney(row interface{ Scan(dest ...any) error }) (Journey, error) {
	var j Journey
	err := row.Scan(
		&j.ID, &j.DepartureTime, &j.ArrivalTime,
		&j.Route.ID, &j.Route.Distance,
		&j.Route.Source.ID, &j.Route.Source.Name, &j.Route.Source.Latitude, &j.Route.Source.Longitude,
		&j.Route.Destination.ID, &j.Route.Destination.Name, &j.Route.Destination.Latitude, &j.Route.Destination.Longitude,
		&j.Train.ID, &j.Train.Name, &j.Train.CargoNum, &j.Train.PlacesInCargo,
		&j.Train.TrainType.ID, &j.Train.TrainType.Name,
		&j.TicketsBooked,
	)
	return j, err
}

func (r *PostgresRepository) ListJourneys(ctx context.Context, f JourneyFilter) ([]Journey, error) {
	var c conditions
	c.contains(`s.name ILIKE ?`, f.Source)
	c.contains(`d.name ILIKE ?`, f.Destination)
	c.contains(`tt.name ILIKE ?`, f.TrainType)
	if f.DepartureAfter != nil {
		c.add(`j.departure_time >= ?`, *f.DepartureAfter)
	}
	if f.DepartureBefore != nil {
		c.add(`j.departure_time <= ?`, *f.DepartureBefore)
	}
	c.contains(`(t.name ILIKE ? OR s.name ILIKE ? OR d.name ILIKE ?)`, f.Search)

	rows, err := r.pool.Query(ctx, selectJourney+c.where()+` ORDER BY j.id`, c.args...)
	if err != nil {
		return nil, fmt.Errorf("select journeys: %w", err)
	}
	defer rows.Close()

	journeys := []Journey{}
	for rows.Next() {
		j, err := scanJourney(rows)
		if err != nil {
			return nil, fmt.Errorf("scan journey: %w", err)
		}
		journeys = append(journeys, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	if len(journeys) == 0 {
		return journeys, nil
	}

	ids := make([]int64, len(journeys))
	for i, j := range journeys {
		ids[i] = j.ID
	}
	crews, err := r.crewByJourney(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range journeys {
		journeys[i].Crew = crews[journeys[i].ID]
	}
	return journeys, nil
}

func (r *PostgresRepository) GetJourney(ctx context.Context, id int64) (Journey, error) {
	j, err := scanJourney(r.pool.QueryRow(ctx, selectJourney+` WHERE j.id=$1`, id))
	if err != nil {
		return Journey{}, mapReadError("select journey", err)
	}

	crews, err := r.crewByJourney(ctx, []int64{id})
	if err != nil {
		return Journey{}, err
	}
	j.Crew = crews[id]

	rows, err := r.pool.Query(ctx, `
		SELECT cargo, seat FROM tickets WHERE journey_id=$1 ORDER BY cargo, seat
	`, id)
	if err != nil {
		return Journey{}, fmt.Errorf("select taken places: %w", err)
	}
	defer rows.Close()

	j.TakenPlaces = []Place{}
	for rows.Next() {
		var p Place
		if err := rows.Scan(&p.Cargo, &p.Seat); err != nil {
			return Journey{}, fmt.Errorf("scan taken place: %w", err)
		}
		j.TakenPlaces = append(j.TakenPlaces, p)
	}
	if err := rows.Err(); err != nil {
		return Journey{}, fmt.Errorf("rows: %w", err)
	}
	return j, nil
}

func (r *PostgresRepository) crewByJourney(ctx context.Context, journeyIDs []int64) (map[int64][]Crew, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT jc.journey_id, c.id, c.first_name, c.last_name
		FROM journey_crew jc
		JOIN crews c ON c.id = jc.crew_id
		WHERE jc.journey_id = ANY($1)
		ORDER BY c.id
	`, journeyIDs)
	if err != nil {
		return nil, fmt.Errorf("select journey crew: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]Crew, len(journeyIDs))
	for rows.Next() {
		var journeyID int64
		var cr Crew
		if err := rows.Scan(&journeyID, &cr.ID, &cr.FirstName, &cr.LastName); err != nil {
			return nil, fmt.Errorf("scan journey crew: %w", err)
		}
		out[journeyID] = append(out[journeyID], cr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) CreateJourney(ctx context.Context, in JourneyInput) (Journey, error) {
	if err := in.Validate(); err != nil {
		return Journey{}, err
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Journey{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO journeys (route_id, train_id, departure_time, arrival_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, in.RouteID, in.TrainID, in.DepartureTime, in.ArrivalTime).Scan(&id)
	if err != nil {
		return Journey{}, mapWriteError("insert journey", err)
	}

	if err := replaceCrew(ctx, tx, id, in.CrewIDs); err != nil {
		return Journey{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Journey{}, mapWriteError("commit journey", err)
	}
	return r.GetJourney(ctx, id)
}

func (r *PostgresRepository) UpdateJourney(ctx context.Context, id int64, in JourneyInput) (Journey, error) {
	if err := in.Validate(); err != nil {
		return Journey{}, err
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Journey{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE journeys
		SET route_id=$2, train_id=$3, departure_time=$4, arrival_time=$5
		WHERE id=$1
	`, id, in.RouteID, in.TrainID, in.DepartureTime, in.ArrivalTime)
	if err != nil {
		return Journey{}, mapWriteError("update journey", err)
	}
	if tag.RowsAffected() == 0 {
		return Journey{}, ErrNotFound
	}

	if err := replaceCrew(ctx, tx, id, in.CrewIDs); err != nil {
		return Journey{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Journey{}, mapWriteError("commit journey", err)
	}
	return r.GetJourney(ctx, id)
}

func (r *PostgresRepository) DeleteJourney(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "journeys", id)
}

func replaceCrew(ctx context.Context, tx pgx.Tx, journeyID int64, crewIDs []int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM journey_crew WHERE journey_id=$1`, journeyID); err != nil {
		return fmt.Errorf("clear journey crew: %w", err)
	}

	seen := make(map[int64]struct{}, len(crewIDs))
	for _, crewID := range crewIDs {
		if _, dup := seen[crewID]; dup {
			continue
		}
		seen[crewID] = struct{}{}

		_, err := tx.Exec(ctx, `
			INSERT INTO journey_crew (journey_id, crew_id) VALUES ($1, $2)
		`, journeyID, crewID)
		if err != nil {
			return mapWriteError("insert journey crew", err)
		}
	}
	return nil
}
