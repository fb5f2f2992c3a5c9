package handlers

import (
	"errors"
	"strconv"

	"transit-backoffice/internal/core/services"
	"transit-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// FleetHandler handles route and vehicle administration endpoints
type FleetHandler struct {
	fleetService *services.FleetService
}

// NewFleetHandler creates a new fleet handler
func NewFleetHandler(fleetService *services.FleetService) *FleetHandler {
	return &FleetHandler{fleetService: fleetService}
}

// ListRoutes lists routes with optional location filter
// @Summary List routes
// @Tags Fleet
// @Produce json
// @Param locationId query int false "Location filter"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} response.Rejection
// @Router /routes [get]
func (h *FleetHandler) ListRoutes(c *fiber.Ctx) error {
	locationID, err := optionalUintQuery(c, "locationId")
	if err != nil {
		return response.BadRequest(c, "Invalid locationId")
	}

	routes, err := h.fleetService.ListRoutes(c.Context(), locationID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list routes")
	}

	return c.JSON(fiber.Map{
		"routes": routes,
	})
}

// CreateRoute creates a route
// @Summary Create route
// @Tags Fleet
// @Accept json
// @Produce json
// @Param body body services.RouteInput true "Route"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.Rejection
// @Router /routes [post]
func (h *FleetHandler) CreateRoute(c *fiber.Ctx) error {
	var input services.RouteInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Name == "" || input.Origin == "" || input.Destination == "" {
		return response.BadRequest(c, "Name, origin and destination are required")
	}

	route, err := h.fleetService.CreateRoute(c.Context(), &input)
	if err != nil {
		if errors.Is(err, services.ErrLocationNotFound) {
			return response.NotFound(c, "Location not found")
		}
		return response.InternalServerError(c, "Failed to create route")
	}

	return response.Created(c, fiber.Map{
		"route": route,
	})
}

// UpdateRoute updates a route
// @Summary Update route
// @Tags Fleet
// @Accept json
// @Produce json
// @Param id path int true "Route ID"
// @Param body body services.RouteInput true "Route"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.Rejection
// @Router /routes/{id} [put]
func (h *FleetHandler) UpdateRoute(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid route id")
	}

	var input services.RouteInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	route, err := h.fleetService.UpdateRoute(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRouteNotFound):
			return response.NotFound(c, "Route not found")
		case errors.Is(err, services.ErrLocationNotFound):
			return response.NotFound(c, "Location not found")
		default:
			return response.InternalServerError(c, "Failed to update route")
		}
	}

	return c.JSON(fiber.Map{
		"route": route,
	})
}

// ListVehicles lists vehicles with optional location filter
// @Summary List vehicles
// @Tags Fleet
// @Produce json
// @Param locationId query int false "Location filter"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} response.Rejection
// @Router /vehicles [get]
func (h *FleetHandler) ListVehicles(c *fiber.Ctx) error {
	locationID, err := optionalUintQuery(c, "locationId")
	if err != nil {
		return response.BadRequest(c, "Invalid locationId")
	}

	vehicles, err := h.fleetService.ListVehicles(c.Context(), locationID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list vehicles")
	}

	return c.JSON(fiber.Map{
		"vehicles": vehicles,
	})
}

// CreateVehicle creates a vehicle
// @Summary Create vehicle
// @Tags Fleet
// @Accept json
// @Produce json
// @Param body body services.VehicleInput true "Vehicle"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.Rejection
// @Failure 409 {object} response.Rejection
// @Router /vehicles [post]
func (h *FleetHandler) CreateVehicle(c *fiber.Ctx) error {
	var input services.VehicleInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.PlateNo == "" {
		return response.BadRequest(c, "Plate number is required")
	}

	vehicle, err := h.fleetService.CreateVehicle(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrLocationNotFound):
			return response.NotFound(c, "Location not found")
		case errors.Is(err, services.ErrRouteNotFound):
			return response.NotFound(c, "Route not found")
		case errors.Is(err, services.ErrDuplicatePlate):
			return response.Conflict(c, "Vehicle plate number already exists")
		default:
			return response.InternalServerError(c, "Failed to create vehicle")
		}
	}

	return response.Created(c, fiber.Map{
		"vehicle": vehicle,
	})
}

// UpdateVehicle updates a vehicle
// @Summary Update vehicle
// @Tags Fleet
// @Accept json
// @Produce json
// @Param id path int true "Vehicle ID"
// @Param body body services.VehicleInput true "Vehicle"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.Rejection
// @Router /vehicles/{id} [put]
func (h *FleetHandler) UpdateVehicle(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid vehicle id")
	}

	var input services.VehicleInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	vehicle, err := h.fleetService.UpdateVehicle(c.Context(), uint(id), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrVehicleNotFound):
			return response.NotFound(c, "Vehicle not found")
		case errors.Is(err, services.ErrLocationNotFound):
			return response.NotFound(c, "Location not found")
		default:
			return response.InternalServerError(c, "Failed to update vehicle")
		}
	}

	return c.JSON(fiber.Map{
		"vehicle": vehicle,
	})
}
