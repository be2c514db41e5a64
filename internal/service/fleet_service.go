package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fleetflow/fleet-service/internal/domain"
	"github.com/fleetflow/fleet-service/internal/repository"
	apperrors "github.com/fleetflow/fleet-service/pkg/util"
)

// FleetService manages vehicles, drivers and expense records.
type FleetService struct {
	vehicles repository.VehicleRepository
	drivers  repository.DriverRepository
	expenses repository.ExpenseRepository
}

// FleetDependencies encapsulates repo requirements for fleet service.
type FleetDependencies struct {
	VehicleRepo repository.VehicleRepository
	DriverRepo  repository.DriverRepository
	ExpenseRepo repository.ExpenseRepository
}

// NewFleetService constructs the service.
func NewFleetService(deps FleetDependencies) *FleetService {
	return &FleetService{
		vehicles: deps.VehicleRepo,
		drivers:  deps.DriverRepo,
		expenses: deps.ExpenseRepo,
	}
}

// VehicleCreateInput collects the registration fields for a new vehicle.
type VehicleCreateInput struct {
	VehicleID    string
	Make         string
	Model        string
	Year         int
	Type         domain.VehicleType
	Class        string
	MaxCapacity  float64
	Odometer     float64
	VIN          string
	LicensePlate string
}

// CreateVehicle registers a fleet asset.
func (s *FleetService) CreateVehicle(ctx context.Context, input VehicleCreateInput) (*domain.Vehicle, error) {
	if input.VehicleID == "" || input.LicensePlate == "" {
		return nil, apperrors.NewValidationError("vehicle_id and license_plate required", nil)
	}
	vehicleType := input.Type
	if vehicleType == "" {
		vehicleType = domain.VehicleTypeTruck
	}
	maxCapacity := input.MaxCapacity
	if maxCapacity <= 0 {
		maxCapacity = 5000
	}

	vehicle := &domain.Vehicle{
		Name:         fmt.Sprintf("%s %s", input.Make, input.Model),
		VehicleID:    input.VehicleID,
		Make:         input.Make,
		Model:        input.Model,
		Year:         input.Year,
		LicensePlate: input.LicensePlate,
		Type:         vehicleType,
		Class:        input.Class,
		MaxCapacity:  maxCapacity,
		Odometer:     input.Odometer,
		Status:       domain.VehicleStatusAvailable,
		VIN:          input.VIN,
	}
	if err := s.vehicles.Create(ctx, vehicle); err != nil {
		return nil, apperrors.MapError(err)
	}
	return vehicle, nil
}

// GetVehicle fetches one vehicle.
func (s *FleetService) GetVehicle(ctx context.Context, id int64) (*domain.Vehicle, error) {
	vehicle, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("vehicle", err)
	}
	return vehicle, nil
}

// ListVehicles returns all vehicles.
func (s *FleetService) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	return s.vehicles.List(ctx)
}

// VehicleUpdateInput carries the mutable vehicle fields. Nil fields are
// left untouched.
type VehicleUpdateInput struct {
	Make            *string
	Model           *string
	Year            *int
	Class           *string
	MaxCapacity     *float64
	Odometer        *float64
	AcquisitionCost *float64
	VIN             *string
	LicensePlate    *string
	Status          *domain.VehicleStatus
}

// UpdateVehicle applies a partial update and returns the stored record.
func (s *FleetService) UpdateVehicle(ctx context.Context, id int64, input VehicleUpdateInput) (*domain.Vehicle, error) {
	vehicle, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("vehicle", err)
	}
	if input.Make != nil {
		vehicle.Make = *input.Make
	}
	if input.Model != nil {
		vehicle.Model = *input.Model
	}
	if input.Make != nil || input.Model != nil {
		vehicle.Name = fmt.Sprintf("%s %s", vehicle.Make, vehicle.Model)
	}
	if input.Year != nil {
		vehicle.Year = *input.Year
	}
	if input.Class != nil {
		vehicle.Class = *input.Class
	}
	if input.MaxCapacity != nil {
		vehicle.MaxCapacity = *input.MaxCapacity
	}
	if input.Odometer != nil {
		vehicle.Odometer = *input.Odometer
	}
	if input.AcquisitionCost != nil {
		vehicle.AcquisitionCost = *input.AcquisitionCost
	}
	if input.VIN != nil {
		vehicle.VIN = *input.VIN
	}
	if input.LicensePlate != nil {
		vehicle.LicensePlate = *input.LicensePlate
	}
	if input.Status != nil {
		if !validVehicleStatus(*input.Status) {
			return nil, apperrors.NewValidationError("unknown vehicle status", map[string]any{"status": string(*input.Status)})
		}
		vehicle.Status = *input.Status
	}
	if err := s.vehicles.Update(ctx, vehicle); err != nil {
		return nil, notFoundOr("vehicle", err)
	}
	return vehicle, nil
}

// UpdateVehicleStatus moves a vehicle to a new duty-cycle status. This is
// how a seeded or shop-bound vehicle becomes Available for dispatch.
func (s *FleetService) UpdateVehicleStatus(ctx context.Context, id int64, status domain.VehicleStatus) (*domain.Vehicle, error) {
	if !validVehicleStatus(status) {
		return nil, apperrors.NewValidationError("unknown vehicle status", map[string]any{"status": string(status)})
	}
	vehicle, err := s.vehicles.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("vehicle", err)
	}
	if err := s.vehicles.UpdateStatus(ctx, id, status); err != nil {
		return nil, notFoundOr("vehicle", err)
	}
	vehicle.Status = status
	return vehicle, nil
}

func validVehicleStatus(status domain.VehicleStatus) bool {
	switch status {
	case domain.VehicleStatusAvailable, domain.VehicleStatusOnTrip, domain.VehicleStatusInShop,
		domain.VehicleStatusRetired, domain.VehicleStatusActive, domain.VehicleStatusEnRoute:
		return true
	}
	return false
}

// DeleteVehicle removes a vehicle, reporting whether it existed.
func (s *FleetService) DeleteVehicle(ctx context.Context, id int64) (bool, error) {
	return s.vehicles.Delete(ctx, id)
}

// DriverCreateInput collects the fields for a new driver record.
type DriverCreateInput struct {
	Name            string
	LicenseNumber   string
	LicenseCategory string
	LicenseExpiry   time.Time
}

// CreateDriver registers a driver.
func (s *FleetService) CreateDriver(ctx context.Context, input DriverCreateInput) (*domain.Driver, error) {
	if input.Name == "" || input.LicenseNumber == "" {
		return nil, apperrors.NewValidationError("name and license_number required", nil)
	}
	driver := &domain.Driver{
		Name:            input.Name,
		LicenseNumber:   input.LicenseNumber,
		LicenseCategory: input.LicenseCategory,
		LicenseExpiry:   input.LicenseExpiry,
		Status:          domain.DriverStatusOnDuty,
		SafetyScore:     100,
	}
	if err := s.drivers.Create(ctx, driver); err != nil {
		return nil, apperrors.MapError(err)
	}
	return driver, nil
}

// GetDriver fetches one driver.
func (s *FleetService) GetDriver(ctx context.Context, id int64) (*domain.Driver, error) {
	driver, err := s.drivers.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("driver", err)
	}
	return driver, nil
}

// ListDrivers returns all drivers.
func (s *FleetService) ListDrivers(ctx context.Context) ([]domain.Driver, error) {
	return s.drivers.List(ctx)
}

// DriverUpdateInput carries the mutable driver fields. Nil fields are
// left untouched.
type DriverUpdateInput struct {
	Name            *string
	LicenseNumber   *string
	LicenseCategory *string
	LicenseExpiry   *time.Time
	SafetyScore     *float64
	Status          *domain.DriverStatus
}

// UpdateDriver applies a partial update and returns the stored record.
func (s *FleetService) UpdateDriver(ctx context.Context, id int64, input DriverUpdateInput) (*domain.Driver, error) {
	driver, err := s.drivers.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("driver", err)
	}
	if input.Name != nil {
		driver.Name = *input.Name
	}
	if input.LicenseNumber != nil {
		driver.LicenseNumber = *input.LicenseNumber
	}
	if input.LicenseCategory != nil {
		driver.LicenseCategory = *input.LicenseCategory
	}
	if input.LicenseExpiry != nil {
		driver.LicenseExpiry = *input.LicenseExpiry
	}
	if input.SafetyScore != nil {
		driver.SafetyScore = *input.SafetyScore
	}
	if input.Status != nil {
		if !validDriverStatus(*input.Status) {
			return nil, apperrors.NewValidationError("unknown driver status", map[string]any{"status": string(*input.Status)})
		}
		driver.Status = *input.Status
	}
	if err := s.drivers.Update(ctx, driver); err != nil {
		return nil, notFoundOr("driver", err)
	}
	return driver, nil
}

// UpdateDriverStatus moves a driver to a new availability status, letting
// an off-duty or suspended driver return to On Duty.
func (s *FleetService) UpdateDriverStatus(ctx context.Context, id int64, status domain.DriverStatus) (*domain.Driver, error) {
	if !validDriverStatus(status) {
		return nil, apperrors.NewValidationError("unknown driver status", map[string]any{"status": string(status)})
	}
	driver, err := s.drivers.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("driver", err)
	}
	if err := s.drivers.UpdateStatus(ctx, id, status); err != nil {
		return nil, notFoundOr("driver", err)
	}
	driver.Status = status
	return driver, nil
}

func validDriverStatus(status domain.DriverStatus) bool {
	switch status {
	case domain.DriverStatusOnDuty, domain.DriverStatusOffDuty,
		domain.DriverStatusSuspended, domain.DriverStatusOnTrip:
		return true
	}
	return false
}

// DeleteDriver removes a driver, reporting whether it existed.
func (s *FleetService) DeleteDriver(ctx context.Context, id int64) (bool, error) {
	return s.drivers.Delete(ctx, id)
}

// LogFuel records a fuel purchase against an existing vehicle.
func (s *FleetService) LogFuel(ctx context.Context, log *domain.FuelLog) (*domain.FuelLog, error) {
	if log.Liters <= 0 || log.Cost < 0 {
		return nil, apperrors.NewValidationError("liters must be positive and cost non-negative", nil)
	}
	if _, err := s.vehicles.GetByID(ctx, log.VehicleID); err != nil {
		return nil, notFoundOr("vehicle", err)
	}
	if err := s.expenses.CreateFuelLog(ctx, log); err != nil {
		return nil, apperrors.MapError(err)
	}
	return log, nil
}

// ListFuelLogs returns fuel logs, optionally scoped to a vehicle.
func (s *FleetService) ListFuelLogs(ctx context.Context, vehicleID *int64) ([]domain.FuelLog, error) {
	return s.expenses.ListFuelLogs(ctx, vehicleID)
}

// LogMaintenance records service work against an existing vehicle.
func (s *FleetService) LogMaintenance(ctx context.Context, log *domain.MaintenanceLog) (*domain.MaintenanceLog, error) {
	if log.Description == "" || log.Cost < 0 {
		return nil, apperrors.NewValidationError("description required and cost non-negative", nil)
	}
	if _, err := s.vehicles.GetByID(ctx, log.VehicleID); err != nil {
		return nil, notFoundOr("vehicle", err)
	}
	if err := s.expenses.CreateMaintenanceLog(ctx, log); err != nil {
		return nil, apperrors.MapError(err)
	}
	return log, nil
}

// ListMaintenanceLogs returns maintenance logs, optionally scoped to a vehicle.
func (s *FleetService) ListMaintenanceLogs(ctx context.Context, vehicleID *int64) ([]domain.MaintenanceLog, error) {
	return s.expenses.ListMaintenanceLogs(ctx, vehicleID)
}

// RecordTripRevenue attributes income to a trip.
func (s *FleetService) RecordTripRevenue(ctx context.Context, revenue *domain.TripRevenue) (*domain.TripRevenue, error) {
	if revenue.Amount < 0 {
		return nil, apperrors.NewValidationError("revenue amount must be non-negative", nil)
	}
	if err := s.expenses.CreateTripRevenue(ctx, revenue); err != nil {
		return nil, apperrors.MapError(err)
	}
	return revenue, nil
}

// ListTripRevenue returns revenue records, optionally scoped to a trip.
func (s *FleetService) ListTripRevenue(ctx context.Context, tripID *int64) ([]domain.TripRevenue, error) {
	return s.expenses.ListTripRevenue(ctx, tripID)
}
