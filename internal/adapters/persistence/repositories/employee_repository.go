package repositories

import (
	"context"

	"transit-backoffice/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// employeeRepository implements EmployeeRepository interface
type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

// Create creates a new employee
func (r *employeeRepository) Create(ctx context.Context, e *models.Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// GetByID gets an employee by ID with location
func (r *employeeRepository) GetByID(ctx context.Context, id uint) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).Preload("Location").Where("id = ?", id).First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// Update updates an employee
func (r *employeeRepository) Update(ctx context.Context, e *models.Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

// List lists employees with pagination and optional location filter
func (r *employeeRepository) List(ctx context.Context, locationID *uint, offset, limit int) ([]*models.Employee, int64, error) {
	var employees []*models.Employee
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Employee{})
	if locationID != nil {
		query = query.Where("location_id = ?", *locationID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Location").Order("last_name, first_name").
		Offset(offset).Limit(limit).Find(&employees).Error; err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}
