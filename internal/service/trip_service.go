package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fleetflow/fleet-service/internal/domain"
	"github.com/fleetflow/fleet-service/internal/events"
	"github.com/fleetflow/fleet-service/internal/repository"
	apperrors "github.com/fleetflow/fleet-service/pkg/util"
)

// TripService dispatches and settles trips, keeping vehicle state in sync.
type TripService struct {
	trips      repository.TripRepository
	vehicles   repository.VehicleRepository
	drivers    repository.DriverRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// TripDependencies encapsulates repo requirements for trip service.
type TripDependencies struct {
	TripRepo    repository.TripRepository
	VehicleRepo repository.VehicleRepository
	DriverRepo  repository.DriverRepository
	Dispatcher  events.Dispatcher
}

// TripDispatchInput is the request to put a vehicle and driver on the road.
type TripDispatchInput struct {
	VehicleID   int64
	DriverID    int64
	CargoWeight float64
	Origin      string
	Destination string
}

// NewTripService constructs the service.
func NewTripService(deps TripDependencies) *TripService {
	return &TripService{
		trips:      deps.TripRepo,
		vehicles:   deps.VehicleRepo,
		drivers:    deps.DriverRepo,
		dispatcher: deps.Dispatcher,
		now:        time.Now,
	}
}

// Dispatch validates the pairing rules and creates the trip as Dispatched,
// flipping the vehicle to On Trip.
func (s *TripService) Dispatch(ctx context.Context, input TripDispatchInput) (*domain.Trip, error) {
	vehicle, err := s.vehicles.GetByID(ctx, input.VehicleID)
	if err != nil {
		return nil, notFoundOr("vehicle", err)
	}
	driver, err := s.drivers.GetByID(ctx, input.DriverID)
	if err != nil {
		return nil, notFoundOr("driver", err)
	}

	if input.CargoWeight <= 0 {
		return nil, apperrors.NewValidationError("cargo weight must be positive", nil)
	}
	if input.CargoWeight > vehicle.MaxCapacity {
		return nil, apperrors.NewValidationError("cargo exceeds vehicle max capacity",
			map[string]any{"max_capacity": vehicle.MaxCapacity})
	}
	if driver.LicenseExpired(s.now()) {
		return nil, apperrors.NewValidationError("driver license is expired", nil)
	}
	if vehicle.Status != domain.VehicleStatusAvailable {
		return nil, apperrors.NewConflict("vehicle is not available",
			map[string]any{"status": string(vehicle.Status)})
	}
	if driver.Status != domain.DriverStatusOnDuty {
		return nil, apperrors.NewConflict("driver is not on duty",
			map[string]any{"status": string(driver.Status)})
	}

	startOdometer := vehicle.Odometer
	trip := &domain.Trip{
		ReferenceKey:  "TRP-" + uuid.NewString(),
		VehicleID:     vehicle.ID,
		DriverID:      driver.ID,
		CargoWeight:   input.CargoWeight,
		Origin:        input.Origin,
		Destination:   input.Destination,
		Status:        domain.TripStatusDispatched,
		StartOdometer: &startOdometer,
	}
	if err := s.trips.Create(ctx, trip); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.vehicles.UpdateStatus(ctx, vehicle.ID, domain.VehicleStatusOnTrip); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventTripDispatched, trip.ReferenceKey, events.TripDispatchedPayload{
		TripID:      trip.ID,
		VehicleID:   trip.VehicleID,
		DriverID:    trip.DriverID,
		CargoWeight: trip.CargoWeight,
		Origin:      trip.Origin,
		Destination: trip.Destination,
	})
	return trip, nil
}

// Complete marks a dispatched trip Completed and frees the vehicle. The
// driver is assumed to stay on duty.
func (s *TripService) Complete(ctx context.Context, id int64, endOdometer *float64) (*domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("trip", err)
	}
	if trip.Status != domain.TripStatusDispatched {
		return nil, apperrors.NewConflict("trip is not dispatched",
			map[string]any{"status": string(trip.Status)})
	}

	completedAt := s.now()
	trip.Status = domain.TripStatusCompleted
	trip.CompletedAt = &completedAt
	trip.EndOdometer = endOdometer
	if err := s.trips.Update(ctx, trip); err != nil {
		return nil, apperrors.MapError(err)
	}

	if err := s.vehicles.UpdateStatus(ctx, trip.VehicleID, domain.VehicleStatusAvailable); err != nil {
		return nil, apperrors.MapError(err)
	}
	if endOdometer != nil {
		if err := s.vehicles.UpdateOdometer(ctx, trip.VehicleID, *endOdometer); err != nil {
			return nil, apperrors.MapError(err)
		}
	}

	s.publish(ctx, events.EventTripCompleted, trip.ReferenceKey, events.TripCompletedPayload{
		TripID:      trip.ID,
		VehicleID:   trip.VehicleID,
		EndOdometer: endOdometer,
	})
	return trip, nil
}

// Cancel aborts a draft or dispatched trip, releasing the vehicle when it
// was already on the road.
func (s *TripService) Cancel(ctx context.Context, id int64) (*domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("trip", err)
	}
	if trip.Status == domain.TripStatusCompleted || trip.Status == domain.TripStatusCancelled {
		return nil, apperrors.NewConflict("trip already settled",
			map[string]any{"status": string(trip.Status)})
	}

	wasDispatched := trip.Status == domain.TripStatusDispatched
	trip.Status = domain.TripStatusCancelled
	if err := s.trips.Update(ctx, trip); err != nil {
		return nil, apperrors.MapError(err)
	}
	if wasDispatched {
		if err := s.vehicles.UpdateStatus(ctx, trip.VehicleID, domain.VehicleStatusAvailable); err != nil {
			return nil, apperrors.MapError(err)
		}
	}
	return trip, nil
}

// GetTrip fetches one trip.
func (s *TripService) GetTrip(ctx context.Context, id int64) (*domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("trip", err)
	}
	return trip, nil
}

// ListTrips returns all trips.
func (s *TripService) ListTrips(ctx context.Context) ([]domain.Trip, error) {
	return s.trips.List(ctx)
}

func (s *TripService) publish(ctx context.Context, eventType events.EventType, subject string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   subject,
		Timestamp: s.now(),
		Payload:   payload,
	})
}

func notFoundOr(resource string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, nil)
	}
	return apperrors.MapError(err)
}
