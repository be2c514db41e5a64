package domain

import "time"

// FuelLog records a fuel purchase against a vehicle, optionally tied to a trip.
type FuelLog struct {
	ID        int64
	VehicleID int64
	TripID    *int64
	Liters    float64
	Cost      float64
	Date      time.Time
}

// MaintenanceLog records service work performed on a vehicle.
type MaintenanceLog struct {
	ID          int64
	VehicleID   int64
	Description string
	Cost        float64
	ServiceDate time.Time
}

// TripRevenue records income attributed to a completed trip.
type TripRevenue struct {
	ID     int64
	TripID int64
	Amount float64
}
