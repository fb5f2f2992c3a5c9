package handlers

import (
	"transit-backoffice/internal/adapters/persistence/repositories"
	"transit-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MasterHandler serves the master data listings (locations, roles)
type MasterHandler struct {
	locationRepo repositories.LocationRepository
	roleRepo     repositories.RoleRepository
}

// NewMasterHandler creates a new master data handler
func NewMasterHandler(locationRepo repositories.LocationRepository, roleRepo repositories.RoleRepository) *MasterHandler {
	return &MasterHandler{
		locationRepo: locationRepo,
		roleRepo:     roleRepo,
	}
}

// ListLocations lists all locations
// @Summary List locations
// @Tags Master
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} response.Rejection
// @Router /locations [get]
func (h *MasterHandler) ListLocations(c *fiber.Ctx) error {
	locations, err := h.locationRepo.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list locations")
	}

	return c.JSON(fiber.Map{
		"locations": locations,
	})
}

// ListRoles lists all roles
// @Summary List roles
// @Tags Master
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} response.Rejection
// @Router /roles [get]
func (h *MasterHandler) ListRoles(c *fiber.Ctx) error {
	roles, err := h.roleRepo.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list roles")
	}

	return c.JSON(fiber.Map{
		"roles": roles,
	})
}
