package handlers

import (
	"strconv"

	"transit-backoffice/internal/adapters/http/middleware"
	"transit-backoffice/internal/core/services"
	"transit-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReportHandler handles reporting endpoints
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RoutesVehicles returns the routes-vehicles report. The locationId
// query parameter is honored only for Super Admins and Accountants;
// everyone else sees their own location.
// @Summary Routes-vehicles report
// @Tags Reports
// @Produce json
// @Param locationId query int false "Location filter (Super Admin / Accountant only)"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} response.Rejection
// @Failure 403 {object} response.Rejection
// @Router /reports/routes-vehicles [get]
func (h *ReportHandler) RoutesVehicles(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var requestedLocation *uint
	if raw := c.Query("locationId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return response.BadRequest(c, "Invalid locationId")
		}
		locationID := uint(id)
		requestedLocation = &locationID
	}

	rows, err := h.reportService.RoutesVehicles(c.Context(), user, requestedLocation)
	if err != nil {
		return response.InternalServerError(c, "Failed to build report")
	}

	return c.JSON(fiber.Map{
		"rows": rows,
	})
}
