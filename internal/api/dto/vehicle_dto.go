package dto

import (
	"time"

	"github.com/fleetflow/fleet-service/internal/domain"
)

// CreateVehicleRequest payload.
type CreateVehicleRequest struct {
	VehicleID    string  `json:"vehicle_id"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	VehicleType  string  `json:"vehicle_type"`
	VehicleClass string  `json:"vehicle_class"`
	MaxCapacity  float64 `json:"max_capacity"`
	Mileage      float64 `json:"mileage"`
	VIN          string  `json:"vin"`
	LicensePlate string  `json:"license_plate"`
}

// UpdateVehicleRequest payload. Nil fields keep their current value.
type UpdateVehicleRequest struct {
	Make            *string  `json:"make"`
	Model           *string  `json:"model"`
	Year            *int     `json:"year"`
	VehicleClass    *string  `json:"vehicle_class"`
	MaxCapacity     *float64 `json:"max_capacity"`
	Mileage         *float64 `json:"mileage"`
	AcquisitionCost *float64 `json:"acquisition_cost"`
	VIN             *string  `json:"vin"`
	LicensePlate    *string  `json:"license_plate"`
	Status          *string  `json:"status"`
}

// UpdateStatusRequest payload for the status-only PATCH endpoints.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// VehicleResponse response shape. Mileage mirrors the odometer for UI
// compatibility.
type VehicleResponse struct {
	ID              int64                `json:"id"`
	Name            string               `json:"name"`
	VehicleID       string               `json:"vehicle_id"`
	Make            string               `json:"make"`
	Model           string               `json:"model"`
	Year            int                  `json:"year"`
	LicensePlate    string               `json:"license_plate"`
	Type            domain.VehicleType   `json:"vehicle_type"`
	Class           string               `json:"vehicle_class"`
	MaxCapacity     float64              `json:"max_capacity"`
	Odometer        float64              `json:"odometer"`
	Mileage         float64              `json:"mileage"`
	AcquisitionCost float64              `json:"acquisition_cost"`
	Status          domain.VehicleStatus `json:"status"`
	VIN             string               `json:"vin"`
	CreatedAt       time.Time            `json:"created_at"`
}

// NewVehicleResponse maps a domain vehicle.
func NewVehicleResponse(v *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:              v.ID,
		Name:            v.Name,
		VehicleID:       v.VehicleID,
		Make:            v.Make,
		Model:           v.Model,
		Year:            v.Year,
		LicensePlate:    v.LicensePlate,
		Type:            v.Type,
		Class:           v.Class,
		MaxCapacity:     v.MaxCapacity,
		Odometer:        v.Odometer,
		Mileage:         v.Odometer,
		AcquisitionCost: v.AcquisitionCost,
		Status:          v.Status,
		VIN:             v.VIN,
		CreatedAt:       v.CreatedAt,
	}
}
