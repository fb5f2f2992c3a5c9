package services

import (
	"context"
	"errors"

	"transit-backoffice/internal/adapters/persistence/models"
	"transit-backoffice/internal/adapters/persistence/repositories"
	"transit-backoffice/internal/core/authz"

	"gorm.io/gorm"
)

// Finance errors
var (
	ErrBudgetNotFound  = errors.New("budget not found")
	ErrBudgetDuplicate = errors.New("budget already exists for this period")
)

// BudgetService handles budget business logic
type BudgetService struct {
	budgetRepo   repositories.BudgetRepository
	locationRepo repositories.LocationRepository
}

// NewBudgetService creates a new budget service
func NewBudgetService(budgetRepo repositories.BudgetRepository, locationRepo repositories.LocationRepository) *BudgetService {
	return &BudgetService{
		budgetRepo:   budgetRepo,
		locationRepo: locationRepo,
	}
}

// BudgetInput carries budget create fields
type BudgetInput struct {
	LocationID uint    `json:"location_id"`
	Category   string  `json:"category"`
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	Amount     float64 `json:"amount"`
}

// Create creates a budget row
func (s *BudgetService) Create(ctx context.Context, input *BudgetInput) (*models.Budget, error) {
	if input.Month < 1 || input.Month > 12 || input.Year < 2000 {
		return nil, ErrInvalidPeriod
	}
	if input.Amount <= 0 || input.Category == "" {
		return nil, ErrInvalidAmount
	}

	if _, err := s.locationRepo.GetByID(ctx, input.LocationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}

	exists, err := s.budgetRepo.ExistsForPeriod(ctx, input.LocationID, input.Category, input.Year, input.Month)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrBudgetDuplicate
	}

	budget := &models.Budget{
		LocationID: input.LocationID,
		Category:   input.Category,
		Year:       input.Year,
		Month:      input.Month,
		Amount:     input.Amount,
	}
	if err := s.budgetRepo.Create(ctx, budget); err != nil {
		return nil, err
	}
	return budget, nil
}

// UpdateAmount adjusts a budget's allocated amount
func (s *BudgetService) UpdateAmount(ctx context.Context, id uint, amount float64) (*models.Budget, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	budget, err := s.budgetRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBudgetNotFound
		}
		return nil, err
	}

	budget.Amount = amount
	if err := s.budgetRepo.Update(ctx, budget); err != nil {
		return nil, err
	}
	return budget, nil
}

// List lists budgets for a year with optional location filter
func (s *BudgetService) List(ctx context.Context, year int, locationID *uint) ([]*models.Budget, error) {
	return s.budgetRepo.List(ctx, year, locationID)
}

// ExpenseService handles expense business logic
type ExpenseService struct {
	expenseRepo repositories.ExpenseRepository
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo repositories.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo}
}

// ExpenseInput carries expense create fields
type ExpenseInput struct {
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// Create records an expense against the caller's location
func (s *ExpenseService) Create(ctx context.Context, user *models.User, input *ExpenseInput) (*models.Expense, error) {
	if input.Amount <= 0 || input.Category == "" {
		return nil, ErrInvalidAmount
	}
	if user.LocationID == nil {
		return nil, ErrLocationNotFound
	}

	expense := &models.Expense{
		LocationID:  *user.LocationID,
		Category:    input.Category,
		Description: input.Description,
		Amount:      input.Amount,
		CreatedBy:   user.ID,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// List lists expenses scoped to the caller's location unless the user
// may view all locations (Super Admin or Accountant).
func (s *ExpenseService) List(ctx context.Context, user *models.User, offset, limit int) ([]*models.Expense, int64, error) {
	var scope *uint
	if !authz.CanViewWideLocation(user) {
		if user.LocationID == nil {
			return []*models.Expense{}, 0, nil
		}
		scope = user.LocationID
	}
	return s.expenseRepo.List(ctx, scope, offset, limit)
}
