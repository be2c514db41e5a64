package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/fleetflow/fleet-service/internal/api/dto"
	"github.com/fleetflow/fleet-service/internal/domain"
	"github.com/fleetflow/fleet-service/internal/service"
	apperrors "github.com/fleetflow/fleet-service/pkg/util"
)

// VehiclesHandler manages vehicle CRUD endpoints.
type VehiclesHandler struct {
	fleet *service.FleetService
}

// NewVehiclesHandler constructs handler.
func NewVehiclesHandler(fleetService *service.FleetService) *VehiclesHandler {
	return &VehiclesHandler{fleet: fleetService}
}

// List handles GET /api/vehicles.
func (h *VehiclesHandler) List(c *fiber.Ctx) error {
	vehicles, err := h.fleet.ListVehicles(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	items := make([]dto.VehicleResponse, 0, len(vehicles))
	for i := range vehicles {
		items = append(items, dto.NewVehicleResponse(&vehicles[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create handles POST /api/vehicles.
func (h *VehiclesHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateVehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	vehicle, err := h.fleet.CreateVehicle(c.Context(), service.VehicleCreateInput{
		VehicleID:    req.VehicleID,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		Type:         mapVehicleType(req.VehicleType),
		Class:        req.VehicleClass,
		MaxCapacity:  req.MaxCapacity,
		Odometer:     req.Mileage,
		VIN:          req.VIN,
		LicensePlate: req.LicensePlate,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "vehicle": dto.NewVehicleResponse(vehicle)})
}

// Get handles GET /api/vehicles/:id.
func (h *VehiclesHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid vehicle id", nil)
	}
	vehicle, err := h.fleet.GetVehicle(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewVehicleResponse(vehicle)})
}

// Update handles PUT /api/vehicles/:id. Omitted fields are left as-is.
func (h *VehiclesHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid vehicle id", nil)
	}
	var req dto.UpdateVehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.VehicleUpdateInput{
		Make:            req.Make,
		Model:           req.Model,
		Year:            req.Year,
		Class:           req.VehicleClass,
		MaxCapacity:     req.MaxCapacity,
		Odometer:        req.Mileage,
		AcquisitionCost: req.AcquisitionCost,
		VIN:             req.VIN,
		LicensePlate:    req.LicensePlate,
	}
	if req.Status != nil {
		status := domain.VehicleStatus(*req.Status)
		input.Status = &status
	}
	vehicle, err := h.fleet.UpdateVehicle(c.Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "vehicle": dto.NewVehicleResponse(vehicle)})
}

// UpdateStatus handles PATCH /api/vehicles/:id/status.
func (h *VehiclesHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid vehicle id", nil)
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil || req.Status == "" {
		return apperrors.NewValidationError("status required", nil)
	}
	vehicle, err := h.fleet.UpdateVehicleStatus(c.Context(), id, domain.VehicleStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "vehicle": dto.NewVehicleResponse(vehicle)})
}

// Delete handles DELETE /api/vehicles/:id.
func (h *VehiclesHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid vehicle id", nil)
	}
	deleted, err := h.fleet.DeleteVehicle(c.Context(), id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !deleted {
		return apperrors.NewNotFound("vehicle", nil)
	}
	return c.JSON(fiber.Map{"success": true})
}

// mapVehicleType folds the UI's friendly type strings into chassis
// categories, defaulting to Truck like the historical importer did.
func mapVehicleType(uiType string) domain.VehicleType {
	switch uiType {
	case "Cargo Van", string(domain.VehicleTypeVan):
		return domain.VehicleTypeVan
	case string(domain.VehicleTypeBike):
		return domain.VehicleTypeBike
	default:
		return domain.VehicleTypeTruck
	}
}
