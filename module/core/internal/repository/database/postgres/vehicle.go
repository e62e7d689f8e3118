package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jotshin/vehicles-api/module/core/domain"
	"github.com/jotshin/vehicles-api/module/core/internal/repository/database"
)

var _ database.VehicleRepository = (*VehicleRepo)(nil)

const vehicleColumns = `id, condition, make, model, body, engine, fuel_type, model_year, mileage, external_color, number_of_doors, latitude, longitude, created_at, modified_at`

type VehicleRepo struct {
	db *sql.DB
}

func NewVehicleRepo(db *sql.DB) *VehicleRepo {
	return &VehicleRepo{db: db}
}

func (r *VehicleRepo) List(ctx context.Context) ([]domain.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := scanVehicle(rows, &v); err != nil {
			return nil, err
		}
		results = append(results, v)
	}
	return results, rows.Err()
}

func (r *VehicleRepo) FindByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles WHERE id = $1`,
		id,
	)

	var v domain.Vehicle
	if err := scanVehicle(row, &v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, err
	}
	return &v, nil
}

func (r *VehicleRepo) Insert(ctx context.Context, v *domain.Vehicle) (int64, error) {
	now := time.Now().UTC()
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO vehicles (condition, make, model, body, engine, fuel_type, model_year, mileage, external_color, number_of_doors, latitude, longitude, created_at, modified_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13) RETURNING id`,
		v.Condition, v.Details.Make, v.Details.Model, v.Details.Body, v.Details.Engine,
		v.Details.FuelType, v.Details.ModelYear, v.Details.Mileage, v.Details.ExternalColor,
		v.Details.NumberOfDoors, v.Location.Lat, v.Location.Lon, now,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	v.ID = id
	v.CreatedAt = now
	v.ModifiedAt = now
	return id, nil
}

func (r *VehicleRepo) Update(ctx context.Context, v *domain.Vehicle) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE vehicles SET condition = $1, make = $2, model = $3, body = $4, engine = $5, fuel_type = $6, model_year = $7, mileage = $8, external_color = $9, number_of_doors = $10, latitude = $11, longitude = $12, modified_at = $13 WHERE id = $14`,
		v.Condition, v.Details.Make, v.Details.Model, v.Details.Body, v.Details.Engine,
		v.Details.FuelType, v.Details.ModelYear, v.Details.Mileage, v.Details.ExternalColor,
		v.Details.NumberOfDoors, v.Location.Lat, v.Location.Lon, now, v.ID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrVehicleNotFound
	}
	v.ModifiedAt = now
	return nil
}

func (r *VehicleRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrVehicleNotFound
	}
	return nil
}

func (r *VehicleRepo) UpdateTelemetry(ctx context.Context, t *domain.Telemetry) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE vehicles SET latitude = $1, longitude = $2, mileage = $3, modified_at = $4 WHERE id = $5`,
		t.Lat, t.Lon, t.Mileage, t.Timestamp.UTC(), t.VehicleID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrVehicleNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanVehicle(row scanner, v *domain.Vehicle) error {
	return row.Scan(
		&v.ID, &v.Condition, &v.Details.Make, &v.Details.Model, &v.Details.Body,
		&v.Details.Engine, &v.Details.FuelType, &v.Details.ModelYear, &v.Details.Mileage,
		&v.Details.ExternalColor, &v.Details.NumberOfDoors, &v.Location.Lat, &v.Location.Lon,
		&v.CreatedAt, &v.ModifiedAt,
	)
}
