package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/fleetflow/fleet-service/internal/api/dto"
	"github.com/fleetflow/fleet-service/internal/service"
	apperrors "github.com/fleetflow/fleet-service/pkg/util"
)

// TripsHandler manages trip dispatch and settlement endpoints.
type TripsHandler struct {
	trips *service.TripService
}

// NewTripsHandler constructs handler.
func NewTripsHandler(tripService *service.TripService) *TripsHandler {
	return &TripsHandler{trips: tripService}
}

// List handles GET /api/trips.
func (h *TripsHandler) List(c *fiber.Ctx) error {
	trips, err := h.trips.ListTrips(c.Context())
	if err != nil {
		return apperrors.MapError(err)
	}
	items := make([]dto.TripResponse, 0, len(trips))
	for i := range trips {
		items = append(items, dto.NewTripResponse(&trips[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Dispatch handles POST /api/trips.
func (h *TripsHandler) Dispatch(c *fiber.Ctx) error {
	var req dto.DispatchTripRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.VehicleID == 0 || req.DriverID == 0 {
		return apperrors.NewValidationError("vehicle_id and driver_id required", nil)
	}

	trip, err := h.trips.Dispatch(c.Context(), service.TripDispatchInput{
		VehicleID:   req.VehicleID,
		DriverID:    req.DriverID,
		CargoWeight: req.CargoWeight,
		Origin:      req.Origin,
		Destination: req.Destination,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "trip": dto.NewTripResponse(trip)})
}

// Get handles GET /api/trips/:id.
func (h *TripsHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid trip id", nil)
	}
	trip, err := h.trips.GetTrip(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTripResponse(trip)})
}

// Complete handles POST /api/trips/:id/complete.
func (h *TripsHandler) Complete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid trip id", nil)
	}
	var req dto.CompleteTripRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}

	trip, err := h.trips.Complete(c.Context(), id, req.EndOdometer)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "trip": dto.NewTripResponse(trip)})
}

// Cancel handles POST /api/trips/:id/cancel.
func (h *TripsHandler) Cancel(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return apperrors.NewValidationError("invalid trip id", nil)
	}
	trip, err := h.trips.Cancel(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "trip": dto.NewTripResponse(trip)})
}
