package handlers

import (
	"errors"
	"strconv"

	"transit-backoffice/internal/core/services"
	"transit-backoffice/internal/pkg/pagination"
	"transit-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// EmployeeHandler handles employee endpoints
type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// List lists employees with pagination and optional location filter
// @Summary List employees
// @Tags Employees
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param locationId query int false "Location filter"
// @Success 200 {object} pagination.Response
// @Failure 403 {object} response.Rejection
// @Router /employees [get]
func (h *EmployeeHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	locationID, err := optionalUintQuery(c, "locationId")
	if err != nil {
		return response.BadRequest(c, "Invalid locationId")
	}

	employees, total, err := h.employeeService.List(c.Context(), locationID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list employees")
	}

	return c.JSON(pagination.NewResponse(employees, params, total))
}

// Get returns one employee
// @Summary Get employee
// @Tags Employees
// @Produce json
// @Param id path int true "Employee ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.Rejection
// @Router /employees/{id} [get]
func (h *EmployeeHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid employee id")
	}

	employee, err := h.employeeService.Get(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			return response.NotFound(c, "Employee not found")
		}
		return response.InternalServerError(c, "Failed to get employee")
	}

	return c.JSON(fiber.Map{
		"employee": employee,
	})
}

// Create creates a new employee
// @Summary Create employee
// @Tags Employees
// @Accept json
// @Produce json
// @Param body body services.EmployeeInput true "Employee"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.Rejection
// @Router /employees [post]
func (h *EmployeeHandler) Create(c *fiber.Ctx) error {
	var input services.EmployeeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.FirstName == "" || input.LastName == "" {
		return response.BadRequest(c, "First and last name are required")
	}

	employee, err := h.employeeService.Create(c.Context(), &input)
	if err != nil {
		return response.InternalServerError(c, "Failed to create employee")
	}

	return response.Created(c, fiber.Map{
		"employee": employee,
	})
}

// Update updates an employee
// @Summary Update employee
// @Tags Employees
// @Accept json
// @Produce json
// @Param id path int true "Employee ID"
// @Param body body services.EmployeeInput true "Employee"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.Rejection
// @Router /employees/{id} [put]
func (h *EmployeeHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid employee id")
	}

	var input services.EmployeeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	employee, err := h.employeeService.Update(c.Context(), uint(id), &input)
	if err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			return response.NotFound(c, "Employee not found")
		}
		return response.InternalServerError(c, "Failed to update employee")
	}

	return c.JSON(fiber.Map{
		"employee": employee,
	})
}

// Deactivate marks an employee inactive
// @Summary Deactivate employee
// @Tags Employees
// @Produce json
// @Param id path int true "Employee ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.Rejection
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) Deactivate(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid employee id")
	}

	if err := h.employeeService.Deactivate(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrEmployeeNotFound) {
			return response.NotFound(c, "Employee not found")
		}
		return response.InternalServerError(c, "Failed to deactivate employee")
	}

	return c.JSON(fiber.Map{
		"message": "Employee deactivated",
	})
}

// optionalUintQuery parses an optional uint query parameter
func optionalUintQuery(c *fiber.Ctx, name string) (*uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, err
	}
	value := uint(id)
	return &value, nil
}
