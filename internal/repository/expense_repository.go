package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fleetflow/fleet-service/internal/domain"
)

// ExpenseRepository persists fuel logs, maintenance logs and trip revenue.
type ExpenseRepository interface {
	CreateFuelLog(ctx context.Context, log *domain.FuelLog) error
	ListFuelLogs(ctx context.Context, vehicleID *int64) ([]domain.FuelLog, error)
	CreateMaintenanceLog(ctx context.Context, log *domain.MaintenanceLog) error
	ListMaintenanceLogs(ctx context.Context, vehicleID *int64) ([]domain.MaintenanceLog, error)
	CreateTripRevenue(ctx context.Context, revenue *domain.TripRevenue) error
	ListTripRevenue(ctx context.Context, tripID *int64) ([]domain.TripRevenue, error)
}

type expenseRepository struct {
	pool *pgxpool.Pool
}

// NewExpenseRepository instantiates repository.
func NewExpenseRepository(pool *pgxpool.Pool) ExpenseRepository {
	return &expenseRepository{pool: pool}
}

func (r *expenseRepository) CreateFuelLog(ctx context.Context, log *domain.FuelLog) error {
	const query = `
        INSERT INTO fuel_logs (vehicle_id, trip_id, liters, cost, date)
        VALUES ($1,$2,$3,$4,COALESCE($5::date, CURRENT_DATE))
        RETURNING id, date`
	var date *time.Time
	if !log.Date.IsZero() {
		date = &log.Date
	}
	return r.pool.QueryRow(ctx, query,
		log.VehicleID,
		log.TripID,
		log.Liters,
		log.Cost,
		date,
	).Scan(&log.ID, &log.Date)
}

func (r *expenseRepository) ListFuelLogs(ctx context.Context, vehicleID *int64) ([]domain.FuelLog, error) {
	const query = `
        SELECT id, vehicle_id, trip_id, liters, cost, date
        FROM fuel_logs WHERE ($1::bigint IS NULL OR vehicle_id=$1) ORDER BY id`
	rows, err := r.pool.Query(ctx, query, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]domain.FuelLog, 0)
	for rows.Next() {
		var l domain.FuelLog
		if err := rows.Scan(&l.ID, &l.VehicleID, &l.TripID, &l.Liters, &l.Cost, &l.Date); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (r *expenseRepository) CreateMaintenanceLog(ctx context.Context, log *domain.MaintenanceLog) error {
	const query = `
        INSERT INTO maintenance_logs (vehicle_id, description, cost, service_date)
        VALUES ($1,$2,$3,COALESCE($4::date, CURRENT_DATE))
        RETURNING id, service_date`
	var date *time.Time
	if !log.ServiceDate.IsZero() {
		date = &log.ServiceDate
	}
	return r.pool.QueryRow(ctx, query,
		log.VehicleID,
		log.Description,
		log.Cost,
		date,
	).Scan(&log.ID, &log.ServiceDate)
}

func (r *expenseRepository) ListMaintenanceLogs(ctx context.Context, vehicleID *int64) ([]domain.MaintenanceLog, error) {
	const query = `
        SELECT id, vehicle_id, description, cost, service_date
        FROM maintenance_logs WHERE ($1::bigint IS NULL OR vehicle_id=$1) ORDER BY id`
	rows, err := r.pool.Query(ctx, query, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]domain.MaintenanceLog, 0)
	for rows.Next() {
		var l domain.MaintenanceLog
		if err := rows.Scan(&l.ID, &l.VehicleID, &l.Description, &l.Cost, &l.ServiceDate); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (r *expenseRepository) CreateTripRevenue(ctx context.Context, revenue *domain.TripRevenue) error {
	const query = `
        INSERT INTO trip_revenue (trip_id, revenue_amount)
        VALUES ($1,$2)
        RETURNING id`
	return r.pool.QueryRow(ctx, query, revenue.TripID, revenue.Amount).Scan(&revenue.ID)
}

func (r *expenseRepository) ListTripRevenue(ctx context.Context, tripID *int64) ([]domain.TripRevenue, error) {
	const query = `
        SELECT id, trip_id, revenue_amount
        FROM trip_revenue WHERE ($1::bigint IS NULL OR trip_id=$1) ORDER BY id`
	rows, err := r.pool.Query(ctx, query, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	revenues := make([]domain.TripRevenue, 0)
	for rows.Next() {
		var rev domain.TripRevenue
		if err := rows.Scan(&rev.ID, &rev.TripID, &rev.Amount); err != nil {
			return nil, err
		}
		revenues = append(revenues, rev)
	}
	return revenues, rows.Err()
}
