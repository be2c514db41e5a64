package events

import (
	"time"

	"github.com/fleetflow/fleet-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountRegistered  EventType = "account_registered"
	EventAccountRoleChanged EventType = "account_role_changed"
	EventCredentialReset    EventType = "credential_reset"
	EventTripDispatched     EventType = "trip_dispatched"
	EventTripCompleted      EventType = "trip_completed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Subject   string      `json:"subject"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AccountRegisteredPayload payload.
type AccountRegisteredPayload struct {
	AccountID int64       `json:"account_id"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
}

// AccountRoleChangedPayload payload.
type AccountRoleChangedPayload struct {
	AccountID int64       `json:"account_id"`
	OldRole   domain.Role `json:"old_role"`
	NewRole   domain.Role `json:"new_role"`
}

// CredentialResetPayload payload.
type CredentialResetPayload struct {
	Email string `json:"email"`
}

// TripDispatchedPayload payload.
type TripDispatchedPayload struct {
	TripID      int64   `json:"trip_id"`
	VehicleID   int64   `json:"vehicle_id"`
	DriverID    int64   `json:"driver_id"`
	CargoWeight float64 `json:"cargo_weight"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
}

// TripCompletedPayload payload.
type TripCompletedPayload struct {
	TripID      int64    `json:"trip_id"`
	VehicleID   int64    `json:"vehicle_id"`
	EndOdometer *float64 `json:"end_odometer,omitempty"`
}
