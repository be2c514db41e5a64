package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fleetflow/fleet-service/internal/domain"
)

// VehicleRepository encapsulates vehicle persistence.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	List(ctx context.Context) ([]domain.Vehicle, error)
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus) error
	UpdateOdometer(ctx context.Context, id int64, odometer float64) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type vehicleRepository struct {
	pool *pgxpool.Pool
}

// NewVehicleRepository instantiates repository.
func NewVehicleRepository(pool *pgxpool.Pool) VehicleRepository {
	return &vehicleRepository{pool: pool}
}

const vehicleColumns = `id, name, vehicle_id, make, model, year, license_plate, vehicle_type,
        vehicle_class, max_capacity, odometer, acquisition_cost, status, vin, created_at`

func (r *vehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	const query = `
        INSERT INTO vehicles (name, vehicle_id, make, model, year, license_plate, vehicle_type,
            vehicle_class, max_capacity, odometer, acquisition_cost, status, vin)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		vehicle.Name,
		vehicle.VehicleID,
		vehicle.Make,
		vehicle.Model,
		vehicle.Year,
		vehicle.LicensePlate,
		vehicle.Type,
		vehicle.Class,
		vehicle.MaxCapacity,
		vehicle.Odometer,
		vehicle.AcquisitionCost,
		vehicle.Status,
		vehicle.VIN,
	).Scan(&vehicle.ID, &vehicle.CreatedAt)
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	const query = `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id=$1`
	var v domain.Vehicle
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.Name, &v.VehicleID, &v.Make, &v.Model, &v.Year, &v.LicensePlate, &v.Type,
		&v.Class, &v.MaxCapacity, &v.Odometer, &v.AcquisitionCost, &v.Status, &v.VIN, &v.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *vehicleRepository) List(ctx context.Context) ([]domain.Vehicle, error) {
	const query = `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vehicles := make([]domain.Vehicle, 0)
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(
			&v.ID, &v.Name, &v.VehicleID, &v.Make, &v.Model, &v.Year, &v.LicensePlate, &v.Type,
			&v.Class, &v.MaxCapacity, &v.Odometer, &v.AcquisitionCost, &v.Status, &v.VIN, &v.CreatedAt,
		); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	const query = `
        UPDATE vehicles SET name=$1, make=$2, model=$3, year=$4, license_plate=$5,
            vehicle_type=$6, vehicle_class=$7, max_capacity=$8, odometer=$9,
            acquisition_cost=$10, status=$11, vin=$12
        WHERE id=$13`
	cmd, err := r.pool.Exec(ctx, query,
		vehicle.Name,
		vehicle.Make,
		vehicle.Model,
		vehicle.Year,
		vehicle.LicensePlate,
		vehicle.Type,
		vehicle.Class,
		vehicle.MaxCapacity,
		vehicle.Odometer,
		vehicle.AcquisitionCost,
		vehicle.Status,
		vehicle.VIN,
		vehicle.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *vehicleRepository) UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus) error {
	const query = `UPDATE vehicles SET status=$1 WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *vehicleRepository) UpdateOdometer(ctx context.Context, id int64, odometer float64) error {
	const query = `UPDATE vehicles SET odometer=$1 WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, odometer, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id int64) (bool, error) {
	const query = `DELETE FROM vehicles WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
