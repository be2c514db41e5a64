package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetflow/fleet-service/internal/domain"
)

type memExpenseRepo struct {
	nextID      int64
	fuel        []domain.FuelLog
	maintenance []domain.MaintenanceLog
	revenue     []domain.TripRevenue
}

func newMemExpenseRepo() *memExpenseRepo {
	return &memExpenseRepo{nextID: 1}
}

func (r *memExpenseRepo) CreateFuelLog(ctx context.Context, log *domain.FuelLog) error {
	log.ID = r.nextID
	r.nextID++
	if log.Date.IsZero() {
		log.Date = time.Now()
	}
	r.fuel = append(r.fuel, *log)
	return nil
}

func (r *memExpenseRepo) ListFuelLogs(ctx context.Context, vehicleID *int64) ([]domain.FuelLog, error) {
	out := make([]domain.FuelLog, 0, len(r.fuel))
	for _, l := range r.fuel {
		if vehicleID == nil || l.VehicleID == *vehicleID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *memExpenseRepo) CreateMaintenanceLog(ctx context.Context, log *domain.MaintenanceLog) error {
	log.ID = r.nextID
	r.nextID++
	if log.ServiceDate.IsZero() {
		log.ServiceDate = time.Now()
	}
	r.maintenance = append(r.maintenance, *log)
	return nil
}

func (r *memExpenseRepo) ListMaintenanceLogs(ctx context.Context, vehicleID *int64) ([]domain.MaintenanceLog, error) {
	out := make([]domain.MaintenanceLog, 0, len(r.maintenance))
	for _, l := range r.maintenance {
		if vehicleID == nil || l.VehicleID == *vehicleID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *memExpenseRepo) CreateTripRevenue(ctx context.Context, revenue *domain.TripRevenue) error {
	revenue.ID = r.nextID
	r.nextID++
	r.revenue = append(r.revenue, *revenue)
	return nil
}

func (r *memExpenseRepo) ListTripRevenue(ctx context.Context, tripID *int64) ([]domain.TripRevenue, error) {
	out := make([]domain.TripRevenue, 0, len(r.revenue))
	for _, rev := range r.revenue {
		if tripID == nil || rev.TripID == *tripID {
			out = append(out, rev)
		}
	}
	return out, nil
}

func newTestFleetService() (*FleetService, *memVehicleRepo) {
	vehicles := newMemVehicleRepo()
	svc := NewFleetService(FleetDependencies{
		VehicleRepo: vehicles,
		DriverRepo:  newMemDriverRepo(),
		ExpenseRepo: newMemExpenseRepo(),
	})
	return svc, vehicles
}

func TestCreateVehicleDefaults(t *testing.T) {
	svc, _ := newTestFleetService()

	vehicle, err := svc.CreateVehicle(context.Background(), VehicleCreateInput{
		VehicleID: "TRK-9000", Make: "Volvo", Model: "VNL 860", LicensePlate: "IL-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Volvo VNL 860", vehicle.Name)
	assert.Equal(t, domain.VehicleTypeTruck, vehicle.Type)
	assert.Equal(t, 5000.0, vehicle.MaxCapacity)
	assert.Equal(t, domain.VehicleStatusAvailable, vehicle.Status)
}

func TestCreateVehicleRequiresIdentifiers(t *testing.T) {
	svc, _ := newTestFleetService()

	_, err := svc.CreateVehicle(context.Background(), VehicleCreateInput{Make: "Ford"})
	assert.Error(t, err)
}

func TestCreateDriverDefaults(t *testing.T) {
	svc, _ := newTestFleetService()

	driver, err := svc.CreateDriver(context.Background(), DriverCreateInput{
		Name: "Jim Halpert", LicenseNumber: "DRV-102",
		LicenseExpiry: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DriverStatusOnDuty, driver.Status)
	assert.Equal(t, 100.0, driver.SafetyScore)
}

func TestUpdateVehicleAppliesPartialFields(t *testing.T) {
	svc, _ := newTestFleetService()
	ctx := context.Background()

	vehicle, err := svc.CreateVehicle(ctx, VehicleCreateInput{
		VehicleID: "TRK-9000", Make: "Volvo", Model: "VNL 860",
		LicensePlate: "IL-1", MaxCapacity: 12000,
	})
	require.NoError(t, err)

	model := "VNL 740"
	odometer := 150000.0
	updated, err := svc.UpdateVehicle(ctx, vehicle.ID, VehicleUpdateInput{
		Model: &model, Odometer: &odometer,
	})
	require.NoError(t, err)
	assert.Equal(t, "VNL 740", updated.Model)
	assert.Equal(t, "Volvo VNL 740", updated.Name)
	assert.Equal(t, 150000.0, updated.Odometer)
	assert.Equal(t, 12000.0, updated.MaxCapacity, "untouched fields survive")

	_, err = svc.UpdateVehicle(ctx, 99, VehicleUpdateInput{Model: &model})
	assert.Equal(t, "NOT_FOUND", domainCode(t, err))

	bogus := domain.VehicleStatus("Parked")
	_, err = svc.UpdateVehicle(ctx, vehicle.ID, VehicleUpdateInput{Status: &bogus})
	assert.Equal(t, "VALIDATION_FAILED", domainCode(t, err))
}

func TestUpdateDriverAppliesPartialFields(t *testing.T) {
	svc, _ := newTestFleetService()
	ctx := context.Background()

	driver, err := svc.CreateDriver(ctx, DriverCreateInput{
		Name: "Pam Beesly", LicenseNumber: "DRV-103",
		LicenseExpiry: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	score := 92.5
	status := domain.DriverStatusOffDuty
	updated, err := svc.UpdateDriver(ctx, driver.ID, DriverUpdateInput{
		SafetyScore: &score, Status: &status,
	})
	require.NoError(t, err)
	assert.Equal(t, 92.5, updated.SafetyScore)
	assert.Equal(t, domain.DriverStatusOffDuty, updated.Status)
	assert.Equal(t, "Pam Beesly", updated.Name, "untouched fields survive")
}

func TestStatusUpdateUnblocksVehicleForDispatch(t *testing.T) {
	// Imported fleet records arrive with statuses like Active or In Shop.
	// The status endpoint is the only way to move them to Available, so
	// dispatch must fail before the transition and succeed after it.
	f := newTripFixture(t)
	fleet := NewFleetService(FleetDependencies{
		VehicleRepo: f.vehicles,
		DriverRepo:  f.drivers,
		ExpenseRepo: newMemExpenseRepo(),
	})
	ctx := context.Background()

	imported := &domain.Vehicle{
		Name: "Freightliner Cascadia", VehicleID: "TRK-7731",
		MaxCapacity: 18000, Status: domain.VehicleStatusActive,
	}
	require.NoError(t, f.vehicles.Create(ctx, imported))

	_, err := f.svc.Dispatch(ctx, TripDispatchInput{
		VehicleID: imported.ID, DriverID: f.driver.ID, CargoWeight: 100,
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", domainCode(t, err))

	vehicle, err := fleet.UpdateVehicleStatus(ctx, imported.ID, domain.VehicleStatusAvailable)
	require.NoError(t, err)
	assert.Equal(t, domain.VehicleStatusAvailable, vehicle.Status)

	trip, err := f.svc.Dispatch(ctx, TripDispatchInput{
		VehicleID: imported.ID, DriverID: f.driver.ID, CargoWeight: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TripStatusDispatched, trip.Status)
}

func TestStatusUpdateReturnsOffDutyDriverToService(t *testing.T) {
	f := newTripFixture(t)
	fleet := NewFleetService(FleetDependencies{
		VehicleRepo: f.vehicles,
		DriverRepo:  f.drivers,
		ExpenseRepo: newMemExpenseRepo(),
	})
	ctx := context.Background()

	require.NoError(t, f.drivers.UpdateStatus(ctx, f.driver.ID, domain.DriverStatusOffDuty))
	_, err := f.svc.Dispatch(ctx, TripDispatchInput{
		VehicleID: f.vehicle.ID, DriverID: f.driver.ID, CargoWeight: 100,
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", domainCode(t, err))

	driver, err := fleet.UpdateDriverStatus(ctx, f.driver.ID, domain.DriverStatusOnDuty)
	require.NoError(t, err)
	assert.Equal(t, domain.DriverStatusOnDuty, driver.Status)

	_, err = f.svc.Dispatch(ctx, TripDispatchInput{
		VehicleID: f.vehicle.ID, DriverID: f.driver.ID, CargoWeight: 100,
	})
	require.NoError(t, err)
}

func TestLogFuelValidation(t *testing.T) {
	svc, vehicles := newTestFleetService()
	ctx := context.Background()

	vehicle := &domain.Vehicle{VehicleID: "TRK-1", Status: domain.VehicleStatusAvailable}
	require.NoError(t, vehicles.Create(ctx, vehicle))

	_, err := svc.LogFuel(ctx, &domain.FuelLog{VehicleID: vehicle.ID, Liters: 0})
	assert.Error(t, err, "zero liters rejected")

	_, err = svc.LogFuel(ctx, &domain.FuelLog{VehicleID: 99, Liters: 10})
	assert.Error(t, err, "unknown vehicle rejected")

	log, err := svc.LogFuel(ctx, &domain.FuelLog{VehicleID: vehicle.ID, Liters: 40, Cost: 75})
	require.NoError(t, err)
	assert.NotZero(t, log.ID)
}

func TestLogMaintenanceValidation(t *testing.T) {
	svc, vehicles := newTestFleetService()
	ctx := context.Background()

	vehicle := &domain.Vehicle{VehicleID: "TRK-1", Status: domain.VehicleStatusAvailable}
	require.NoError(t, vehicles.Create(ctx, vehicle))

	_, err := svc.LogMaintenance(ctx, &domain.MaintenanceLog{VehicleID: vehicle.ID})
	assert.Error(t, err, "description required")

	log, err := svc.LogMaintenance(ctx, &domain.MaintenanceLog{
		VehicleID: vehicle.ID, Description: "brake pads", Cost: 420,
	})
	require.NoError(t, err)
	assert.NotZero(t, log.ID)
}

func TestRecordTripRevenueRejectsNegative(t *testing.T) {
	svc, _ := newTestFleetService()

	_, err := svc.RecordTripRevenue(context.Background(), &domain.TripRevenue{TripID: 1, Amount: -1})
	assert.Error(t, err)

	revenue, err := svc.RecordTripRevenue(context.Background(), &domain.TripRevenue{TripID: 1, Amount: 2500})
	require.NoError(t, err)
	assert.NotZero(t, revenue.ID)
}
