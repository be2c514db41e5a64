package dto

import (
	"time"

	"github.com/fleetflow/fleet-service/internal/domain"
)

// CreateDriverRequest payload.
type CreateDriverRequest struct {
	Name            string `json:"name"`
	LicenseNumber   string `json:"license_number"`
	LicenseCategory string `json:"license_category"`
	LicenseExpiry   string `json:"license_expiry_date"`
}

// UpdateDriverRequest payload. Nil fields keep their current value.
type UpdateDriverRequest struct {
	Name            *string  `json:"name"`
	LicenseNumber   *string  `json:"license_number"`
	LicenseCategory *string  `json:"license_category"`
	LicenseExpiry   *string  `json:"license_expiry_date"`
	SafetyScore     *float64 `json:"safety_score"`
	Status          *string  `json:"status"`
}

// DriverResponse response shape.
type DriverResponse struct {
	ID              int64               `json:"id"`
	Name            string              `json:"name"`
	LicenseNumber   string              `json:"license_number"`
	LicenseCategory string              `json:"license_category"`
	LicenseExpiry   time.Time           `json:"license_expiry_date"`
	Status          domain.DriverStatus `json:"status"`
	SafetyScore     float64             `json:"safety_score"`
	CreatedAt       time.Time           `json:"created_at"`
}

// NewDriverResponse maps a domain driver.
func NewDriverResponse(d *domain.Driver) DriverResponse {
	return DriverResponse{
		ID:              d.ID,
		Name:            d.Name,
		LicenseNumber:   d.LicenseNumber,
		LicenseCategory: d.LicenseCategory,
		LicenseExpiry:   d.LicenseExpiry,
		Status:          d.Status,
		SafetyScore:     d.SafetyScore,
		CreatedAt:       d.CreatedAt,
	}
}
