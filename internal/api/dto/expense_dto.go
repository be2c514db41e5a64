package dto

import (
	"time"

	"github.com/fleetflow/fleet-service/internal/domain"
)

// CreateFuelLogRequest payload.
type CreateFuelLogRequest struct {
	VehicleID int64   `json:"vehicle_id"`
	TripID    *int64  `json:"trip_id"`
	Liters    float64 `json:"liters"`
	Cost      float64 `json:"cost"`
	Date      string  `json:"date"`
}

// CreateMaintenanceLogRequest payload.
type CreateMaintenanceLogRequest struct {
	VehicleID   int64   `json:"vehicle_id"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
	ServiceDate string  `json:"service_date"`
}

// CreateTripRevenueRequest payload.
type CreateTripRevenueRequest struct {
	TripID int64   `json:"trip_id"`
	Amount float64 `json:"revenue_amount"`
}

// FuelLogResponse response shape.
type FuelLogResponse struct {
	ID        int64     `json:"id"`
	VehicleID int64     `json:"vehicle_id"`
	TripID    *int64    `json:"trip_id"`
	Liters    float64   `json:"liters"`
	Cost      float64   `json:"cost"`
	Date      time.Time `json:"date"`
}

// MaintenanceLogResponse response shape.
type MaintenanceLogResponse struct {
	ID          int64     `json:"id"`
	VehicleID   int64     `json:"vehicle_id"`
	Description string    `json:"description"`
	Cost        float64   `json:"cost"`
	ServiceDate time.Time `json:"service_date"`
}

// TripRevenueResponse response shape.
type TripRevenueResponse struct {
	ID     int64   `json:"id"`
	TripID int64   `json:"trip_id"`
	Amount float64 `json:"revenue_amount"`
}

// NewFuelLogResponse maps a domain fuel log.
func NewFuelLogResponse(l *domain.FuelLog) FuelLogResponse {
	return FuelLogResponse{ID: l.ID, VehicleID: l.VehicleID, TripID: l.TripID, Liters: l.Liters, Cost: l.Cost, Date: l.Date}
}

// NewMaintenanceLogResponse maps a domain maintenance log.
func NewMaintenanceLogResponse(l *domain.MaintenanceLog) MaintenanceLogResponse {
	return MaintenanceLogResponse{ID: l.ID, VehicleID: l.VehicleID, Description: l.Description, Cost: l.Cost, ServiceDate: l.ServiceDate}
}

// NewTripRevenueResponse maps a domain trip revenue record.
func NewTripRevenueResponse(r *domain.TripRevenue) TripRevenueResponse {
	return TripRevenueResponse{ID: r.ID, TripID: r.TripID, Amount: r.Amount}
}
