package domain

import "time"

// TripStatus is the trip lifecycle state.
type TripStatus string

const (
	TripStatusDraft      TripStatus = "Draft"
	TripStatusDispatched TripStatus = "Dispatched"
	TripStatusCompleted  TripStatus = "Completed"
	TripStatusCancelled  TripStatus = "Cancelled"
)

// Trip is a dispatched cargo run binding one vehicle and one driver.
type Trip struct {
	ID            int64
	ReferenceKey  string
	VehicleID     int64
	DriverID      int64
	CargoWeight   float64
	Origin        string
	Destination   string
	Status        TripStatus
	StartOdometer *float64
	EndOdometer   *float64
	CreatedAt     time.Time
	CompletedAt   *time.Time
}
