package handlers

import (
	"errors"
	"strconv"
	"time"

	"transit-backoffice/internal/core/services"
	"transit-backoffice/internal/pkg/pagination"
	"transit-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PayrollHandler handles payroll endpoints
type PayrollHandler struct {
	payrollService *services.PayrollService
}

// NewPayrollHandler creates a new payroll handler
func NewPayrollHandler(payrollService *services.PayrollService) *PayrollHandler {
	return &PayrollHandler{payrollService: payrollService}
}

// List lists payrolls for a period (defaults to the current month)
// @Summary List payrolls
// @Tags Payrolls
// @Produce json
// @Param year query int false "Year"
// @Param month query int false "Month"
// @Param employeeId query int false "Employee filter"
// @Success 200 {object} pagination.Response
// @Failure 403 {object} response.Rejection
// @Router /payrolls [get]
func (h *PayrollHandler) List(c *fiber.Ctx) error {
	now := time.Now()
	year, _ := strconv.Atoi(c.Query("year", strconv.Itoa(now.Year())))
	month, _ := strconv.Atoi(c.Query("month", strconv.Itoa(int(now.Month()))))

	employeeID, err := optionalUintQuery(c, "employeeId")
	if err != nil {
		return response.BadRequest(c, "Invalid employeeId")
	}

	params := pagination.GetParams(c)

	payrolls, total, err := h.payrollService.List(c.Context(), year, month, employeeID, params.Offset, params.Limit)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPeriod) {
			return response.BadRequest(c, "Invalid payroll period")
		}
		return response.InternalServerError(c, "Failed to list payrolls")
	}

	return c.JSON(pagination.NewResponse(payrolls, params, total))
}

// Create creates a payroll row for an employee/period
// @Summary Create payroll
// @Tags Payrolls
// @Accept json
// @Produce json
// @Param body body services.PayrollInput true "Payroll"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.Rejection
// @Failure 409 {object} response.Rejection
// @Router /payrolls [post]
func (h *PayrollHandler) Create(c *fiber.Ctx) error {
	var input services.PayrollInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	payroll, err := h.payrollService.Create(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPeriod):
			return response.BadRequest(c, "Invalid payroll period")
		case errors.Is(err, services.ErrInvalidAmount):
			return response.BadRequest(c, "Invalid payroll amount")
		case errors.Is(err, services.ErrEmployeeNotFound):
			return response.NotFound(c, "Employee not found")
		case errors.Is(err, services.ErrPayrollDuplicate):
			return response.Conflict(c, "Payroll already exists for this period")
		default:
			return response.InternalServerError(c, "Failed to create payroll")
		}
	}

	return response.Created(c, fiber.Map{
		"payroll": payroll,
	})
}

// MarkPaid transitions a payroll to paid
// @Summary Mark payroll paid
// @Tags Payrolls
// @Produce json
// @Param id path int true "Payroll ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.Rejection
// @Failure 409 {object} response.Rejection
// @Router /payrolls/{id}/pay [patch]
func (h *PayrollHandler) MarkPaid(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid payroll id")
	}

	payroll, err := h.payrollService.MarkPaid(c.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPayrollNotFound):
			return response.NotFound(c, "Payroll not found")
		case errors.Is(err, services.ErrPayrollAlreadyPaid):
			return response.Conflict(c, "Payroll already paid")
		default:
			return response.InternalServerError(c, "Failed to mark payroll paid")
		}
	}

	return c.JSON(fiber.Map{
		"payroll": payroll,
	})
}
