package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetflow/fleet-service/internal/domain"
	"github.com/fleetflow/fleet-service/internal/events"
	apperrors "github.com/fleetflow/fleet-service/pkg/util"
)

type memVehicleRepo struct {
	nextID   int64
	vehicles map[int64]*domain.Vehicle
}

func newMemVehicleRepo() *memVehicleRepo {
	return &memVehicleRepo{nextID: 1, vehicles: map[int64]*domain.Vehicle{}}
}

func (r *memVehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error {
	v.ID = r.nextID
	r.nextID++
	clone := *v
	r.vehicles[v.ID] = &clone
	return nil
}

func (r *memVehicleRepo) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	if v, ok := r.vehicles[id]; ok {
		clone := *v
		return &clone, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *memVehicleRepo) List(ctx context.Context) ([]domain.Vehicle, error) {
	out := make([]domain.Vehicle, 0, len(r.vehicles))
	for _, v := range r.vehicles {
		out = append(out, *v)
	}
	return out, nil
}

func (r *memVehicleRepo) Update(ctx context.Context, v *domain.Vehicle) error {
	if _, ok := r.vehicles[v.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *v
	r.vehicles[v.ID] = &clone
	return nil
}

func (r *memVehicleRepo) UpdateStatus(ctx context.Context, id int64, status domain.VehicleStatus) error {
	v, ok := r.vehicles[id]
	if !ok {
		return pgx.ErrNoRows
	}
	v.Status = status
	return nil
}

func (r *memVehicleRepo) UpdateOdometer(ctx context.Context, id int64, odometer float64) error {
	v, ok := r.vehicles[id]
	if !ok {
		return pgx.ErrNoRows
	}
	v.Odometer = odometer
	return nil
}

func (r *memVehicleRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := r.vehicles[id]; !ok {
		return false, nil
	}
	delete(r.vehicles, id)
	return true, nil
}

type memDriverRepo struct {
	nextID  int64
	drivers map[int64]*domain.Driver
}

func newMemDriverRepo() *memDriverRepo {
	return &memDriverRepo{nextID: 1, drivers: map[int64]*domain.Driver{}}
}

func (r *memDriverRepo) Create(ctx context.Context, d *domain.Driver) error {
	d.ID = r.nextID
	r.nextID++
	clone := *d
	r.drivers[d.ID] = &clone
	return nil
}

func (r *memDriverRepo) GetByID(ctx context.Context, id int64) (*domain.Driver, error) {
	if d, ok := r.drivers[id]; ok {
		clone := *d
		return &clone, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *memDriverRepo) List(ctx context.Context) ([]domain.Driver, error) {
	out := make([]domain.Driver, 0, len(r.drivers))
	for _, d := range r.drivers {
		out = append(out, *d)
	}
	return out, nil
}

func (r *memDriverRepo) Update(ctx context.Context, d *domain.Driver) error {
	if _, ok := r.drivers[d.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *d
	r.drivers[d.ID] = &clone
	return nil
}

func (r *memDriverRepo) UpdateStatus(ctx context.Context, id int64, status domain.DriverStatus) error {
	d, ok := r.drivers[id]
	if !ok {
		return pgx.ErrNoRows
	}
	d.Status = status
	return nil
}

func (r *memDriverRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := r.drivers[id]; !ok {
		return false, nil
	}
	delete(r.drivers, id)
	return true, nil
}

type memTripRepo struct {
	nextID int64
	trips  map[int64]*domain.Trip
}

func newMemTripRepo() *memTripRepo {
	return &memTripRepo{nextID: 1, trips: map[int64]*domain.Trip{}}
}

func (r *memTripRepo) Create(ctx context.Context, t *domain.Trip) error {
	t.ID = r.nextID
	r.nextID++
	t.CreatedAt = time.Now()
	clone := *t
	r.trips[t.ID] = &clone
	return nil
}

func (r *memTripRepo) Update(ctx context.Context, t *domain.Trip) error {
	if _, ok := r.trips[t.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *t
	r.trips[t.ID] = &clone
	return nil
}

func (r *memTripRepo) GetByID(ctx context.Context, id int64) (*domain.Trip, error) {
	if t, ok := r.trips[id]; ok {
		clone := *t
		return &clone, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *memTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	out := make([]domain.Trip, 0, len(r.trips))
	for _, t := range r.trips {
		out = append(out, *t)
	}
	return out, nil
}

type tripFixture struct {
	svc      *TripService
	vehicles *memVehicleRepo
	drivers  *memDriverRepo
	trips    *memTripRepo
	vehicle  *domain.Vehicle
	driver   *domain.Driver
}

func newTripFixture(t *testing.T) *tripFixture {
	t.Helper()
	vehicles := newMemVehicleRepo()
	drivers := newMemDriverRepo()
	trips := newMemTripRepo()

	svc := NewTripService(TripDependencies{
		TripRepo:    trips,
		VehicleRepo: vehicles,
		DriverRepo:  drivers,
		Dispatcher:  events.NewInMemoryDispatcher(),
	})

	vehicle := &domain.Vehicle{
		Name: "Volvo VNL", VehicleID: "TRK-8492", MaxCapacity: 12000,
		Odometer: 142500, Status: domain.VehicleStatusAvailable,
	}
	require.NoError(t, vehicles.Create(context.Background(), vehicle))

	driver := &domain.Driver{
		Name: "Michael Scott", LicenseNumber: "DRV-101",
		LicenseExpiry: time.Now().Add(365 * 24 * time.Hour),
		Status:        domain.DriverStatusOnDuty,
	}
	require.NoError(t, drivers.Create(context.Background(), driver))

	return &tripFixture{svc: svc, vehicles: vehicles, drivers: drivers, trips: trips, vehicle: vehicle, driver: driver}
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	domainErr := apperrors.ToDomainError(err)
	require.NotNil(t, domainErr)
	return domainErr.Code
}

func TestDispatchHappyPath(t *testing.T) {
	f := newTripFixture(t)
	ctx := context.Background()

	trip, err := f.svc.Dispatch(ctx, TripDispatchInput{
		VehicleID: f.vehicle.ID, DriverID: f.driver.ID,
		CargoWeight: 8000, Origin: "Chicago", Destination: "Dallas",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TripStatusDispatched, trip.Status)
	assert.Contains(t, trip.ReferenceKey, "TRP-")
	require.NotNil(t, trip.StartOdometer)
	assert.Equal(t, 142500.0, *trip.StartOdometer)

	vehicle, err := f.vehicles.GetByID(ctx, f.vehicle.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VehicleStatusOnTrip, vehicle.Status)
}

func TestDispatchRejectsCargoOverCapacity(t *testing.T) {
	f := newTripFixture(t)

	_, err := f.svc.Dispatch(context.Background(), TripDispatchInput{
		VehicleID: f.vehicle.ID, DriverID: f.driver.ID, CargoWeight: 12001,
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
}

func TestDispatchRejectsNonPositiveCargo(t *testing.T) {
	f := newTripFixture(t)

	for _, cargo := range []float64{0, -5} {
		_, err := f.svc.Dispatch(context.Background(), TripDispatchInput{
			VehicleID: f.vehicle.ID, DriverID: f.driver.ID, CargoWeight: cargo,
		})
		require.Error(t, err, "cargo %v", cargo)
		assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
	}
}

func TestDispatchRejectsExpiredLicense(t *testing.T) {
	f := newTripFixture(t)
	f.svc.now = func() time.Time { return f.driver.LicenseExpiry.Add(time.Hour) }

	_, err := f.svc.Dispatch(context.Background(), TripDispatchInput{
		VehicleID: f.vehicle.ID, DriverID: f.driver.ID, CargoWeight: 100,
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
}

func TestDispatchRejectsUnavailableVehicle(t *testing.T) {
	f := newTripFixture(t)
	ctx := context.Background()
	require.NoError(t, f.vehicles.UpdateStatus(ctx, f.vehicle.ID, domain.VehicleStatusInShop))

	_, err := f.svc.Dispatch(ctx, TripDispatchInput{
		VehicleID: f.vehicle.ID, DriverID: f.driver.ID, CargoWeight: 100,
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", domainCode(t, err))
}

func TestDispatchRejectsOffDutyDriver(t *testing.T) {
	f := newTripFixture(t)
	ctx := context.Background()
	require.NoError(t, f.drivers.UpdateStatus(ctx, f.driver.ID, domain.DriverStatusSuspended))

	_, err := f.svc.Dispatch(ctx, TripDispatchInput{
		VehicleID: f.vehicle.ID, DriverID: f.driver.ID, CargoWeight: 100,
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", domainCode(t, err))
}

func TestDispatchUnknownVehicleOrDriver(t *testing.T) {
	f := newTripFixture(t)
	ctx := context.Background()

	_, err := f.svc.Dispatch(ctx, TripDispatchInput{VehicleID: 99, DriverID: f.driver.ID, CargoWeight: 100})
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))

	_, err = f.svc.Dispatch(ctx, TripDispatchInput{VehicleID: f.vehicle.ID, DriverID: 99, CargoWeight: 100})
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))
}

func TestCompleteFreesVehicleAndUpdatesOdometer(t *testing.T) {
	f := newTripFixture(t)
	ctx := context.Background()

	trip, err := f.svc.Dispatch(ctx, TripDispatchInput{
		VehicleID: f.vehicle.ID, DriverID: f.driver.ID, CargoWeight: 100,
	})
	require.NoError(t, err)

	end := 143900.0
	completed, err := f.svc.Complete(ctx, trip.ID, &end)
	require.NoError(t, err)
	assert.Equal(t, domain.TripStatusCompleted, completed.Status)
	require.NotNil(t, completed.CompletedAt)
	require.NotNil(t, completed.EndOdometer)
	assert.Equal(t, end, *completed.EndOdometer)

	vehicle, err := f.vehicles.GetByID(ctx, f.vehicle.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VehicleStatusAvailable, vehicle.Status)
	assert.Equal(t, end, vehicle.Odometer)
}

func TestCompleteRequiresDispatchedStatus(t *testing.T) {
	f := newTripFixture(t)
	ctx := context.Background()

	trip, err := f.svc.Dispatch(ctx, TripDispatchInput{
		VehicleID: f.vehicle.ID, DriverID: f.driver.ID, CargoWeight: 100,
	})
	require.NoError(t, err)

	_, err = f.svc.Complete(ctx, trip.ID, nil)
	require.NoError(t, err)

	_, err = f.svc.Complete(ctx, trip.ID, nil)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", domainCode(t, err))
}

func TestCancelReleasesDispatchedVehicle(t *testing.T) {
	f := newTripFixture(t)
	ctx := context.Background()

	trip, err := f.svc.Dispatch(ctx, TripDispatchInput{
		VehicleID: f.vehicle.ID, DriverID: f.driver.ID, CargoWeight: 100,
	})
	require.NoError(t, err)

	cancelled, err := f.svc.Cancel(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TripStatusCancelled, cancelled.Status)

	vehicle, err := f.vehicles.GetByID(ctx, f.vehicle.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VehicleStatusAvailable, vehicle.Status)

	_, err = f.svc.Cancel(ctx, trip.ID)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", domainCode(t, err))
}
