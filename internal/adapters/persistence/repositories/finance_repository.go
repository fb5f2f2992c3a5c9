package repositories

import (
	"context"

	"transit-backoffice/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// budgetRepository implements BudgetRepository interface
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository
func NewBudgetRepository(db *gorm.DB) BudgetRepository {
	return &budgetRepository{db: db}
}

// Create creates a budget row
func (r *budgetRepository) Create(ctx context.Context, b *models.Budget) error {
	return r.db.WithContext(ctx).Create(b).Error
}

// GetByID gets a budget by ID
func (r *budgetRepository) GetByID(ctx context.Context, id uint) (*models.Budget, error) {
	var budget models.Budget
	err := r.db.WithContext(ctx).Preload("Location").Where("id = ?", id).First(&budget).Error
	if err != nil {
		return nil, err
	}
	return &budget, nil
}

// Update updates a budget row
func (r *budgetRepository) Update(ctx context.Context, b *models.Budget) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// List lists budgets for a year with optional location filter
func (r *budgetRepository) List(ctx context.Context, year int, locationID *uint) ([]*models.Budget, error) {
	var budgets []*models.Budget

	query := r.db.WithContext(ctx).Where("year = ?", year)
	if locationID != nil {
		query = query.Where("location_id = ?", *locationID)
	}

	if err := query.Preload("Location").Order("location_id, month, category").Find(&budgets).Error; err != nil {
		return nil, err
	}
	return budgets, nil
}

// ExistsForPeriod checks if a budget already exists for the location/category/period
func (r *budgetRepository) ExistsForPeriod(ctx context.Context, locationID uint, category string, year, month int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Budget{}).
		Where("location_id = ? AND category = ? AND year = ? AND month = ?", locationID, category, year, month).
		Count(&count).Error
	return count > 0, err
}

// expenseRepository implements ExpenseRepository interface
type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

// Create creates an expense row
func (r *expenseRepository) Create(ctx context.Context, e *models.Expense) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// List lists expenses with optional location scope, newest first
func (r *expenseRepository) List(ctx context.Context, locationID *uint, offset, limit int) ([]*models.Expense, int64, error) {
	var expenses []*models.Expense
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Expense{})
	if locationID != nil {
		query = query.Where("location_id = ?", *locationID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&expenses).Error; err != nil {
		return nil, 0, err
	}

	return expenses, total, nil
}
