package repositories

import (
	"context"

	"transit-backoffice/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// payrollRepository implements PayrollRepository interface
type payrollRepository struct {
	db *gorm.DB
}

// NewPayrollRepository creates a new payroll repository
func NewPayrollRepository(db *gorm.DB) PayrollRepository {
	return &payrollRepository{db: db}
}

// Create creates a payroll row
func (r *payrollRepository) Create(ctx context.Context, p *models.Payroll) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// GetByID gets a payroll by ID with employee
func (r *payrollRepository) GetByID(ctx context.Context, id uint) (*models.Payroll, error) {
	var payroll models.Payroll
	err := r.db.WithContext(ctx).Preload("Employee").Where("id = ?", id).First(&payroll).Error
	if err != nil {
		return nil, err
	}
	return &payroll, nil
}

// Update updates a payroll row
func (r *payrollRepository) Update(ctx context.Context, p *models.Payroll) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// List lists payrolls for a period with optional employee filter
func (r *payrollRepository) List(ctx context.Context, year, month int, employeeID *uint, offset, limit int) ([]*models.Payroll, int64, error) {
	var payrolls []*models.Payroll
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Payroll{}).
		Where("year = ? AND month = ?", year, month)
	if employeeID != nil {
		query = query.Where("employee_id = ?", *employeeID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Preload("Employee").Order("employee_id").
		Offset(offset).Limit(limit).Find(&payrolls).Error; err != nil {
		return nil, 0, err
	}

	return payrolls, total, nil
}

// ExistsForPeriod checks if a payroll already exists for the employee/period
func (r *payrollRepository) ExistsForPeriod(ctx context.Context, employeeID uint, year, month int) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Payroll{}).
		Where("employee_id = ? AND year = ? AND month = ?", employeeID, year, month).
		Count(&count).Error
	return count > 0, err
}
