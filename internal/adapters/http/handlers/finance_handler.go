package handlers

import (
	"errors"
	"strconv"
	"time"

	"transit-backoffice/internal/adapters/http/middleware"
	"transit-backoffice/internal/core/services"
	"transit-backoffice/internal/pkg/pagination"
	"transit-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BudgetHandler handles budget endpoints
type BudgetHandler struct {
	budgetService *services.BudgetService
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(budgetService *services.BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService}
}

// List lists budgets for a year with optional location filter
// @Summary List budgets
// @Tags Budgets
// @Produce json
// @Param year query int false "Year"
// @Param locationId query int false "Location filter"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} response.Rejection
// @Router /budgets [get]
func (h *BudgetHandler) List(c *fiber.Ctx) error {
	year, _ := strconv.Atoi(c.Query("year", strconv.Itoa(time.Now().Year())))

	locationID, err := optionalUintQuery(c, "locationId")
	if err != nil {
		return response.BadRequest(c, "Invalid locationId")
	}

	budgets, err := h.budgetService.List(c.Context(), year, locationID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list budgets")
	}

	return c.JSON(fiber.Map{
		"budgets": budgets,
	})
}

// Create creates a budget row
// @Summary Create budget
// @Tags Budgets
// @Accept json
// @Produce json
// @Param body body services.BudgetInput true "Budget"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.Rejection
// @Failure 409 {object} response.Rejection
// @Router /budgets [post]
func (h *BudgetHandler) Create(c *fiber.Ctx) error {
	var input services.BudgetInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	budget, err := h.budgetService.Create(c.Context(), &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPeriod):
			return response.BadRequest(c, "Invalid budget period")
		case errors.Is(err, services.ErrInvalidAmount):
			return response.BadRequest(c, "Invalid budget amount")
		case errors.Is(err, services.ErrLocationNotFound):
			return response.NotFound(c, "Location not found")
		case errors.Is(err, services.ErrBudgetDuplicate):
			return response.Conflict(c, "Budget already exists for this period")
		default:
			return response.InternalServerError(c, "Failed to create budget")
		}
	}

	return response.Created(c, fiber.Map{
		"budget": budget,
	})
}

// UpdateAmountRequest represents a budget amount update body
type UpdateAmountRequest struct {
	Amount float64 `json:"amount"`
}

// UpdateAmount adjusts a budget's allocated amount
// @Summary Update budget amount
// @Tags Budgets
// @Accept json
// @Produce json
// @Param id path int true "Budget ID"
// @Param body body UpdateAmountRequest true "Amount"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.Rejection
// @Router /budgets/{id} [patch]
func (h *BudgetHandler) UpdateAmount(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid budget id")
	}

	var req UpdateAmountRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	budget, err := h.budgetService.UpdateAmount(c.Context(), uint(id), req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAmount):
			return response.BadRequest(c, "Invalid budget amount")
		case errors.Is(err, services.ErrBudgetNotFound):
			return response.NotFound(c, "Budget not found")
		default:
			return response.InternalServerError(c, "Failed to update budget")
		}
	}

	return c.JSON(fiber.Map{
		"budget": budget,
	})
}

// ExpenseHandler handles expense endpoints
type ExpenseHandler struct {
	expenseService *services.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// List lists expenses, scoped to the caller's own location unless the
// caller is a Super Admin or Accountant
// @Summary List expenses
// @Tags Expenses
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Success 200 {object} pagination.Response
// @Failure 401 {object} response.Rejection
// @Router /expenses [get]
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	params := pagination.GetParams(c)

	expenses, total, err := h.expenseService.List(c.Context(), user, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list expenses")
	}

	return c.JSON(pagination.NewResponse(expenses, params, total))
}

// Create records an expense against the caller's location
// @Summary Create expense
// @Tags Expenses
// @Accept json
// @Produce json
// @Param body body services.ExpenseInput true "Expense"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.Rejection
// @Router /expenses [post]
func (h *ExpenseHandler) Create(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input services.ExpenseInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	expense, err := h.expenseService.Create(c.Context(), user, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAmount):
			return response.BadRequest(c, "Invalid expense amount")
		case errors.Is(err, services.ErrLocationNotFound):
			return response.BadRequest(c, "Your account has no location assigned")
		default:
			return response.InternalServerError(c, "Failed to create expense")
		}
	}

	return response.Created(c, fiber.Map{
		"expense": expense,
	})
}
