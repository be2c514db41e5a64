package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fleetflow/fleet-service/internal/domain"
)

// TripRepository encapsulates trip persistence.
type TripRepository interface {
	Create(ctx context.Context, trip *domain.Trip) error
	Update(ctx context.Context, trip *domain.Trip) error
	GetByID(ctx context.Context, id int64) (*domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
}

type tripRepository struct {
	pool *pgxpool.Pool
}

// NewTripRepository instantiates repository.
func NewTripRepository(pool *pgxpool.Pool) TripRepository {
	return &tripRepository{pool: pool}
}

const tripColumns = `id, reference_key, vehicle_id, driver_id, cargo_weight, origin, destination,
        status, start_odometer, end_odometer, created_at, completed_at`

func (r *tripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	const query = `
        INSERT INTO trips (reference_key, vehicle_id, driver_id, cargo_weight, origin, destination, status, start_odometer)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		trip.ReferenceKey,
		trip.VehicleID,
		trip.DriverID,
		trip.CargoWeight,
		trip.Origin,
		trip.Destination,
		trip.Status,
		trip.StartOdometer,
	).Scan(&trip.ID, &trip.CreatedAt)
}

func (r *tripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	const query = `
        UPDATE trips SET status=$1, end_odometer=$2, completed_at=$3
        WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query,
		trip.Status,
		trip.EndOdometer,
		trip.CompletedAt,
		trip.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *tripRepository) GetByID(ctx context.Context, id int64) (*domain.Trip, error) {
	const query = `SELECT ` + tripColumns + ` FROM trips WHERE id=$1`
	var t domain.Trip
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.ReferenceKey, &t.VehicleID, &t.DriverID, &t.CargoWeight, &t.Origin, &t.Destination,
		&t.Status, &t.StartOdometer, &t.EndOdometer, &t.CreatedAt, &t.CompletedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tripRepository) List(ctx context.Context) ([]domain.Trip, error) {
	const query = `SELECT ` + tripColumns + ` FROM trips ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trips := make([]domain.Trip, 0)
	for rows.Next() {
		var t domain.Trip
		if err := rows.Scan(
			&t.ID, &t.ReferenceKey, &t.VehicleID, &t.DriverID, &t.CargoWeight, &t.Origin, &t.Destination,
			&t.Status, &t.StartOdometer, &t.EndOdometer, &t.CreatedAt, &t.CompletedAt,
		); err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, rows.Err()
}
