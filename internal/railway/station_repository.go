package railway

import (
	"context"
	"fmt"
)

const selectStation = `SELECT id, name, latitude, longitude FROM stations`

func scanStation(row interface{ Scan(dest ...any) error }) (Station, error) {
	var s Station
	err := row.Scan(&s.ID, &s.Name, &s.Latitude, &s.Longitude)
	return s, err
}

func (r *PostgresRepository) ListStations(ctx context.Context, f SearchFilter) ([]Station, error) {
	var c conditions
	c.contains(`name ILIKE ?`, f.Search)

	rows, err := r.pool.Query(ctx, selectStation+c.where()+` ORDER BY id`, c.args...)
	if err != nil {
		return nil, fmt.Errorf("select stations: %w", err)
	}
	defer rows.Close()

	stations := []Station{}
	for rows.Next() {
		s, err := scanStation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan station: %w", err)
		}
		stations = append(stations, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return stations, nil
}

func (r *PostgresRepository) GetStation(ctx context.Context, id int64) (Station, error) {
	s, err := scanStation(r.pool.QueryRow(ctx, selectStation+` WHERE id=$1`, id))
	if err != nil {
		return Station{}, mapReadError("select station", err)
	}
	return s, nil
}

func (r *PostgresRepository) CreateStation(ctx context.Context, in StationInput) (Station, error) {
	if err := in.Validate(); err != nil {
		return Station{}, err
	}
	s := Station{Name: in.Name, Latitude: in.Latitude, Longitude: in.Longitude}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO stations (name, latitude, longitude)
		VALUES ($1, $2, $3)
		RETURNING id
	`, in.Name, in.Latitude, in.Longitude).Scan(&s.ID)
	if err != nil {
		return Station{}, mapWriteError("insert station", err)
	}
	return s, nil
}

func (r *PostgresRepository) UpdateStation(ctx context.Context, id int64, in StationInput) (Station, error) {
	if err := in.Validate(); err != nil {
		return Station{}, err
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE stations SET name=$2, latitude=$3, longitude=$4 WHERE id=$1
	`, id, in.Name, in.Latitude, in.Longitude)
	if err != nil {
		return Station{}, mapWriteError("update station", err)
	}
	if tag.RowsAffected() == 0 {
		return Station{}, ErrNotFound
	}
	return Station{ID: id, Name: in.Name, Latitude: in.Latitude, Longitude: in.Longitude}, nil
}

func (r *PostgresRepository) DeleteStation(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "stations", id)
}

const selectRoute = `
	SELECT r.id, r.distance,
	       s.id, s.name, s.latitude, s.longitude,
	       d.id, d.name, d.latitude, d.longitude
	FROM routes r
	JOIN stations s ON s.id = r.source_id
	JOIN stations d ON d.id = r.destination_id`

func scanRoute(row interface{ Scan(dest ...any) error }) (Route, error) {
	var rt Route
	err := row.Scan(
		&rt.ID, &rt.Distance,
		&rt.Source.ID, &rt.Source.Name, &rt.Source.Latitude, &rt.Source.Longitude,
		&rt.Destination.ID, &rt.Destination.Name, &rt.Destination.Latitude, &rt.Destination.Longitude,
	)
	return rt, err
}

func (r *PostgresRepository) ListRoutes(ctx context.Context, f RouteFilter) ([]Route, error) {
	var c conditions
	c.contains(`s.name ILIKE ?`, f.Source)
	c.contains(`d.name ILIKE ?`, f.Destination)
	c.contains(`(s.name ILIKE ? OR d.name ILIKE ?)`, f.Search)

	rows, err := r.pool.Query(ctx, selectRoute+c.where()+` ORDER BY r.id`, c.args...)
	if err != nil {
		return nil, fmt.Errorf("select routes: %w", err)
	}
	defer rows.Close()

	routes := []Route{}
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			return nil, fmt.Errorf("scan route: %w", err)
		}
		routes = append(routes, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return routes, nil
}

func (r *PostgresRepository) GetRoute(ctx context.Context, id int64) (Route, error) {
	rt, err := scanRoute(r.pool.QueryRow(ctx, selectRoute+` WHERE r.id=$1`, id))
	if err != nil {
		return Route{}, mapReadError("select route", err)
	}
	return rt, nil
}

func (r *PostgresRepository) CreateRoute(ctx context.Context, in RouteInput) (Route, error) {
	if err := in.Validate(); err != nil {
		return Route{}, err
	}
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO routes (source_id, destination_id, distance)
		VALUES ($1, $2, $3)
		RETURNING id
	`, in.SourceID, in.DestinationID, in.Distance).Scan(&id)
	if err != nil {
		return Route{}, mapWriteError("insert route", err)
	}
	return r.GetRoute(ctx, id)
}

func (r *PostgresRepository) UpdateRoute(ctx context.Context, id int64, in RouteInput) (Route, error) {
	if err := in.Validate(); err != nil {
		return Route{}, err
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE routes SET source_id=$2, destination_id=$3, distance=$4 WHERE id=$1
	`, id, in.SourceID, in.DestinationID, in.Distance)
	if err != nil {
		return Route{}, mapWriteError("update route", err)
	}
	if tag.RowsAffected() == 0 {
		return Route{}, ErrNotFound
	}
	return r.GetRoute(ctx, id)
}

func (r *PostgresRepository) DeleteRoute(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "routes", id)
}
