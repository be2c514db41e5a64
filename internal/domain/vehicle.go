package domain

import "time"

// VehicleStatus tracks where a vehicle is in its duty cycle.
type VehicleStatus string

const (
	VehicleStatusAvailable VehicleStatus = "Available"
	VehicleStatusOnTrip    VehicleStatus = "On Trip"
	VehicleStatusInShop    VehicleStatus = "In Shop"
	VehicleStatusRetired   VehicleStatus = "Retired"
	VehicleStatusActive    VehicleStatus = "Active"
	VehicleStatusEnRoute   VehicleStatus = "En Route"
)

// VehicleType enumerates chassis categories.
type VehicleType string

const (
	VehicleTypeTruck VehicleType = "Truck"
	VehicleTypeVan   VehicleType = "Van"
	VehicleTypeBike  VehicleType = "Bike"
)

// Vehicle is a fleet asset.
type Vehicle struct {
	ID              int64
	Name            string
	VehicleID       string
	Make            string
	Model           string
	Year            int
	LicensePlate    string
	Type            VehicleType
	Class           string
	MaxCapacity     float64
	Odometer        float64
	AcquisitionCost float64
	Status          VehicleStatus
	VIN             string
	CreatedAt       time.Time
}
