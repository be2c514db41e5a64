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

// DriversHandler manages driver CRUD endpoints.
type DriversHandler struct {
	fleet *service.FleetService
}

// NewDriversHandler constructs handler.
func NewDriversHandler(fleetService *service.FleetService) *DriversHandler {
	return &DriversHandler{fleet: fleetService}
}

// List handles GET /api/drivers.
func (h *DriversHandler) List(c *fiber.Ctx) error {
	drivers, err := h.fleet.ListDrivers(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	items := make([]dto.DriverResponse, 0, len(drivers))
	for i := range drivers {
		items = append(items, dto.NewDriverResponse(&drivers[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create handles POST /api/drivers.
func (h *DriversHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateDriverRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	expiry, err := time.Parse("2006-01-02", req.LicenseExpiry)
	if err != nil {
		return apperrors.NewValidationError("license_expiry_date must be YYYY-MM-DD", nil)
	}

	driver, err := h.fleet.CreateDriver(c.Context(), service.DriverCreateInput{
		Name:            req.Name,
		LicenseNumber:   req.LicenseNumber,
		LicenseCategory: req.LicenseCategory,
		LicenseExpiry:   expiry,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "driver": dto.NewDriverResponse(driver)})
}

// Get handles GET /api/drivers/:id.
func (h *DriversHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid driver id", nil)
	}
	driver, err := h.fleet.GetDriver(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewDriverResponse(driver)})
}

// Update handles PUT /api/drivers/:id. Omitted fields are left as-is.
func (h *DriversHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid driver id", nil)
	}
	var req dto.UpdateDriverRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.DriverUpdateInput{
		Name:            req.Name,
		LicenseNumber:   req.LicenseNumber,
		LicenseCategory: req.LicenseCategory,
		SafetyScore:     req.SafetyScore,
	}
	if req.LicenseExpiry != nil {
		expiry, err := time.Parse("2006-01-02", *req.LicenseExpiry)
		if err != nil {
			return apperrors.NewValidationError("license_expiry_date must be YYYY-MM-DD", nil)
		}
		input.LicenseExpiry = &expiry
	}
	if req.Status != nil {
		status := domain.DriverStatus(*req.Status)
		input.Status = &status
	}
	driver, err := h.fleet.UpdateDriver(c.Context(), id, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "driver": dto.NewDriverResponse(driver)})
}

// UpdateStatus handles PATCH /api/drivers/:id/status.
func (h *DriversHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid driver id", nil)
	}
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil || req.Status == "" {
		return apperrors.NewValidationError("status required", nil)
	}
	driver, err := h.fleet.UpdateDriverStatus(c.Context(), id, domain.DriverStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "driver": dto.NewDriverResponse(driver)})
}

// Delete handles DELETE /api/drivers/:id.
func (h *DriversHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid driver id", nil)
	}
	deleted, err := h.fleet.DeleteDriver(c.Context(), id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !deleted {
		return apperrors.NewNotFound("driver", nil)
	}
	return c.JSON(fiber.Map{"success": true})
}
