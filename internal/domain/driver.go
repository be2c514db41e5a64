package domain

import "time"

// DriverStatus tracks driver availability.
type DriverStatus string

const (
	DriverStatusOnDuty    DriverStatus = "On Duty"
	DriverStatusOffDuty   DriverStatus = "Off Duty"
	DriverStatusSuspended DriverStatus = "Suspended"
	DriverStatusOnTrip    DriverStatus = "On Trip"
)

// Driver is a licensed operator assignable to trips.
type Driver struct {
	ID              int64
	Name            string
	LicenseNumber   string
	LicenseCategory string
	LicenseExpiry   time.Time
	Status          DriverStatus
	SafetyScore     float64
	CreatedAt       time.Time
}

// LicenseExpired reports whether the driver's license lapsed before now.
func (d *Driver) LicenseExpired(now time.Time) bool {
	return d.LicenseExpiry.Before(now)
}
