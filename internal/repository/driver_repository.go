package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fleetflow/fleet-service/internal/domain"
)

// DriverRepository encapsulates driver persistence.
type DriverRepository interface {
	Create(ctx context.Context, driver *domain.Driver) error
	GetByID(ctx context.Context, id int64) (*domain.Driver, error)
	List(ctx context.Context) ([]domain.Driver, error)
	Update(ctx context.Context, driver *domain.Driver) error
	UpdateStatus(ctx context.Context, id int64, status domain.DriverStatus) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type driverRepository struct {
	pool *pgxpool.Pool
}

// NewDriverRepository instantiates repository.
func NewDriverRepository(pool *pgxpool.Pool) DriverRepository {
	return &driverRepository{pool: pool}
}

const driverColumns = `id, name, license_number, license_category, license_expiry_date, status, safety_score, created_at`

func (r *driverRepository) Create(ctx context.Context, driver *domain.Driver) error {
	const query = `
        INSERT INTO drivers (name, license_number, license_category, license_expiry_date, status, safety_score)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		driver.Name,
		driver.LicenseNumber,
		driver.LicenseCategory,
		driver.LicenseExpiry,
		driver.Status,
		driver.SafetyScore,
	).Scan(&driver.ID, &driver.CreatedAt)
}

func (r *driverRepository) GetByID(ctx context.Context, id int64) (*domain.Driver, error) {
	const query = `SELECT ` + driverColumns + ` FROM drivers WHERE id=$1`
	var d domain.Driver
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.Name, &d.LicenseNumber, &d.LicenseCategory, &d.LicenseExpiry, &d.Status, &d.SafetyScore, &d.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *driverRepository) List(ctx context.Context) ([]domain.Driver, error) {
	const query = `SELECT ` + driverColumns + ` FROM drivers ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drivers := make([]domain.Driver, 0)
	for rows.Next() {
		var d domain.Driver
		if err := rows.Scan(
			&d.ID, &d.Name, &d.LicenseNumber, &d.LicenseCategory, &d.LicenseExpiry, &d.Status, &d.SafetyScore, &d.CreatedAt,
		); err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

func (r *driverRepository) Update(ctx context.Context, driver *domain.Driver) error {
	const query = `
        UPDATE drivers SET name=$1, license_number=$2, license_category=$3,
            license_expiry_date=$4, status=$5, safety_score=$6
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		driver.Name,
		driver.LicenseNumber,
		driver.LicenseCategory,
		driver.LicenseExpiry,
		driver.Status,
		driver.SafetyScore,
		driver.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *driverRepository) UpdateStatus(ctx context.Context, id int64, status domain.DriverStatus) error {
	const query = `UPDATE drivers SET status=$1 WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *driverRepository) Delete(ctx context.Context, id int64) (bool, error) {
	const query = `DELETE FROM drivers WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
