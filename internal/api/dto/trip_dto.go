package dto

import (
	"time"

	"github.com/fleetflow/fleet-service/internal/domain"
)

// DispatchTripRequest payload.
type DispatchTripRequest struct {
	VehicleID   int64   `json:"vehicle_id"`
	DriverID    int64   `json:"driver_id"`
	CargoWeight float64 `json:"cargo_weight"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
}

// CompleteTripRequest payload.
type CompleteTripRequest struct {
	EndOdometer *float64 `json:"end_odometer"`
}

// TripResponse response shape.
type TripResponse struct {
	ID            int64             `json:"id"`
	ReferenceKey  string            `json:"reference_key"`
	VehicleID     int64             `json:"vehicle_id"`
	DriverID      int64             `json:"driver_id"`
	CargoWeight   float64           `json:"cargo_weight"`
	Origin        string            `json:"origin"`
	Destination   string            `json:"destination"`
	Status        domain.TripStatus `json:"status"`
	StartOdometer *float64          `json:"start_odometer"`
	EndOdometer   *float64          `json:"end_odometer"`
	CreatedAt     time.Time         `json:"created_at"`
	CompletedAt   *time.Time        `json:"completed_at"`
}

// NewTripResponse maps a domain trip.
func NewTripResponse(t *domain.Trip) TripResponse {
	return TripResponse{
		ID:            t.ID,
		ReferenceKey:  t.ReferenceKey,
		VehicleID:     t.VehicleID,
		DriverID:      t.DriverID,
		CargoWeight:   t.CargoWeight,
		Origin:        t.Origin,
		Destination:   t.Destination,
		Status:        t.Status,
		StartOdometer: t.StartOdometer,
		EndOdometer:   t.EndOdometer,
		CreatedAt:     t.CreatedAt,
		CompletedAt:   t.CompletedAt,
	}
}
