package railway

import (
	"context"
	"fmt"
)

func (r *PostgresRepository) ListTrainTypes(ctx context.Context, f SearchFilter) ([]TrainType, error) {
	var c conditions
	c.contains(`name ILIKE ?`, f.Search)

	rows, err := r.pool.Query(ctx, `SELECT id, name FROM train_types`+c.where()+` ORDER BY id`, c.args...)
	if err != nil {
		return nil, fmt.Errorf("select train_types: %w", err)
	}
	defer rows.Close()

	types := []TrainType{}
	for rows.Next() {
		var tt TrainType
		if err := rows.Scan(&tt.ID, &tt.Name); err != nil {
			return nil, fmt.Errorf("scan train_type: %w", err)
		}
		types = append(types, tt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return types, nil
}

func (r *PostgresRepository) GetTrainType(ctx context.Context, id int64) (TrainType, error) {
	var tt TrainType
	err := r.pool.QueryRow(ctx, `SELECT id, name FROM train_types WHERE id=$1`, id).Scan(&tt.ID, &tt.Name)
	if err != nil {
		return TrainType{}, mapReadError("select train_type", err)
	}
	return tt, nil
}

func (r *PostgresRepository) CreateTrainType(ctx context.Context, in TrainTypeInput) (TrainType, error) {
	if err := in.Validate(); err != nil {
		return TrainType{}, err
	}
	tt := TrainType{Name: in.Name}
	err := r.pool.QueryRow(ctx, `INSERT INTO train_types (name) VALUES ($1) RETURNING id`, in.Name).Scan(&tt.ID)
	if err != nil {
		return TrainType{}, mapWriteError("insert train_type", err)
	}
	return tt, nil
}

func (r *PostgresRepository) UpdateTrainType(ctx context.Context, id int64, in TrainTypeInput) (TrainType, error) {
	if err := in.Validate(); err != nil {
		return TrainType{}, err
	}
	tag, err := r.pool.Exec(ctx, `UPDATE train_types SET name=$2 WHERE id=$1`, id, in.Name)
	if err != nil {
		return TrainType{}, mapWriteError("update train_type", err)
	}
	if tag.RowsAffected() == 0 {
		return TrainType{}, ErrNotFound
	}
	return TrainType{ID: id, Name: in.Name}, nil
}

func (r *PostgresRepository) DeleteTrainType(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "train_types", id)
}

const selectTrain = `
	SELECT t.id, t.name, t.cargo_num, t.places_in_cargo, tt.id, tt.name
	FROM trains t
	JOIN train_types tt ON tt.id = t.train_type_id`

func scanTrain(row interface{ Scan(dest ...any) error }) (Train, error) {
	var t Train
	err := row.Scan(&t.ID, &t.Name, &t.CargoNum, &t.PlacesInCargo, &t.TrainType.ID, &t.TrainType.Name)
	return t, err
}

func (r *PostgresRepository) ListTrains(ctx context.Context, f TrainFilter) ([]Train, error) {
	var c conditions
	c.contains(`t.name ILIKE ?`, f.Name)
	c.contains(`tt.name ILIKE ?`, f.TrainType)
	c.contains(`t.name ILIKE ?`, f.Search)

	rows, err := r.pool.Query(ctx, selectTrain+c.where()+` ORDER BY t.id`, c.args...)
	if err != nil {
		return nil, fmt.Errorf("select trains: %w", err)
	}
	defer rows.Close()

	trains := []Train{}
	for rows.Next() {
		t, err := scanTrain(rows)
		if err != nil {
			return nil, fmt.Errorf("scan train: %w", err)
		}
		trains = append(trains, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return trains, nil
}

func (r *PostgresRepository) GetTrain(ctx context.Context, id int64) (Train, error) {
	t, err := scanTrain(r.pool.QueryRow(ctx, selectTrain+` WHERE t.id=$1`, id))
	if err != nil {
		return Train{}, mapReadError("select train", err)
	}
	return t, nil
}

func (r *PostgresRepository) CreateTrain(ctx context.Context, in TrainInput) (Train, error) {
	if err := in.Validate(); err != nil {
		return Train{}, err
	}
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO trains (name, cargo_num, places_in_cargo, train_type_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, in.Name, in.CargoNum, in.PlacesInCargo, in.TrainTypeID).Scan(&id)
	if err != nil {
		return Train{}, mapWriteError("insert train", err)
	}
	return r.GetTrain(ctx, id)
}

func (r *PostgresRepository) UpdateTrain(ctx context.Context, id int64, in TrainInput) (Train, error) {
	if err := in.Validate(); err != nil {
		return Train{}, err
	}
	tag, err := r.pool.Exec(ctx, `
		UPDATE trains
		SET name=$2, cargo_num=$3, places_in_cargo=$4, train_type_id=$5
		WHERE id=$1
	`, id, in.Name, in.CargoNum, in.PlacesInCargo, in.TrainTypeID)
	if err != nil {
		return Train{}, mapWriteError("update train", err)
	}
	if tag.RowsAffected() == 0 {
		return Train{}, ErrNotFound
	}
	return r.GetTrain(ctx, id)
}

func (r *PostgresRepository) DeleteTrain(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "trains", id)
}
