package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fleetflow/fleet-service/internal/api/dto"
	"github.com/fleetflow/fleet-service/internal/domain"
	"github.com/fleetflow/fleet-service/internal/service"
	apperrors "github.com/fleetflow/fleet-service/pkg/util"
)

// ExpensesHandler manages fuel, maintenance and revenue records.
type ExpensesHandler struct {
	fleet *service.FleetService
}

// NewExpensesHandler constructs handler.
func NewExpensesHandler(fleetService *service.FleetService) *ExpensesHandler {
	return &ExpensesHandler{fleet: fleetService}
}

// CreateFuelLog handles POST /api/expenses/fuel.
func (h *ExpensesHandler) CreateFuelLog(c *fiber.Ctx) error {
	var req dto.CreateFuelLogRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.VehicleID == 0 {
		return apperrors.NewValidationError("vehicle_id required", nil)
	}
	date, err := parseOptionalDate(req.Date)
	if err != nil {
		return apperrors.NewValidationError("date must be YYYY-MM-DD", nil)
	}

	log := &domain.FuelLog{
		VehicleID: req.VehicleID,
		TripID:    req.TripID,
		Liters:    req.Liters,
		Cost:      req.Cost,
		Date:      date,
	}
	if _, err := h.fleet.LogFuel(c.Context(), log); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "fuel_log": dto.NewFuelLogResponse(log)})
}

// ListFuelLogs handles GET /api/expenses/fuel.
func (h *ExpensesHandler) ListFuelLogs(c *fiber.Ctx) error {
	vehicleID, err := parseOptionalID(c.Query("vehicle_id"))
	if err != nil {
		return apperrors.NewValidationError("invalid vehicle_id filter", nil)
	}
	logs, err := h.fleet.ListFuelLogs(c.Context(), vehicleID)
	if err != nil {
		return apperrors.MapError(err)
	}
	items := make([]dto.FuelLogResponse, 0, len(logs))
	for i := range logs {
		items = append(items, dto.NewFuelLogResponse(&logs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateMaintenanceLog handles POST /api/expenses/maintenance.
func (h *ExpensesHandler) CreateMaintenanceLog(c *fiber.Ctx) error {
	var req dto.CreateMaintenanceLogRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.VehicleID == 0 {
		return apperrors.NewValidationError("vehicle_id required", nil)
	}
	serviceDate, err := parseOptionalDate(req.ServiceDate)
	if err != nil {
		return apperrors.NewValidationError("service_date must be YYYY-MM-DD", nil)
	}

	log := &domain.MaintenanceLog{
		VehicleID:   req.VehicleID,
		Description: req.Description,
		Cost:        req.Cost,
		ServiceDate: serviceDate,
	}
	if _, err := h.fleet.LogMaintenance(c.Context(), log); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "maintenance_log": dto.NewMaintenanceLogResponse(log)})
}

// ListMaintenanceLogs handles GET /api/expenses/maintenance.
func (h *ExpensesHandler) ListMaintenanceLogs(c *fiber.Ctx) error {
	vehicleID, err := parseOptionalID(c.Query("vehicle_id"))
	if err != nil {
		return apperrors.NewValidationError("invalid vehicle_id filter", nil)
	}
	logs, err := h.fleet.ListMaintenanceLogs(c.Context(), vehicleID)
	if err != nil {
		return apperrors.MapError(err)
	}
	items := make([]dto.MaintenanceLogResponse, 0, len(logs))
	for i := range logs {
		items = append(items, dto.NewMaintenanceLogResponse(&logs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateTripRevenue handles POST /api/expenses/revenue.
func (h *ExpensesHandler) CreateTripRevenue(c *fiber.Ctx) error {
	var req dto.CreateTripRevenueRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.TripID == 0 {
		return apperrors.NewValidationError("trip_id required", nil)
	}

	revenue := &domain.TripRevenue{TripID: req.TripID, Amount: req.Amount}
	if _, err := h.fleet.RecordTripRevenue(c.Context(), revenue); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "trip_revenue": dto.NewTripRevenueResponse(revenue)})
}

// ListTripRevenue handles GET /api/expenses/revenue.
func (h *ExpensesHandler) ListTripRevenue(c *fiber.Ctx) error {
	tripID, err := parseOptionalID(c.Query("trip_id"))
	if err != nil {
		return apperrors.NewValidationError("invalid trip_id filter", nil)
	}
	revenues, err := h.fleet.ListTripRevenue(c.Context(), tripID)
	if err != nil {
		return apperrors.MapError(err)
	}
	items := make([]dto.TripRevenueResponse, 0, len(revenues))
	for i := range revenues {
		items = append(items, dto.NewTripRevenueResponse(&revenues[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func parseOptionalDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", raw)
}

func parseOptionalID(raw string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
