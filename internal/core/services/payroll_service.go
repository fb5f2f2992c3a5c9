package services

import (
	"context"
	"errors"
	"time"

	"transit-backoffice/internal/adapters/persistence/models"
	"transit-backoffice/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Payroll errors
var (
	ErrPayrollNotFound    = errors.New("payroll not found")
	ErrPayrollDuplicate   = errors.New("payroll already exists for this period")
	ErrPayrollAlreadyPaid = errors.New("payroll already paid")
	ErrInvalidPeriod      = errors.New("invalid payroll period")
	ErrInvalidAmount      = errors.New("invalid payroll amount")
)

// PayrollService handles payroll business logic
type PayrollService struct {
	payrollRepo  repositories.PayrollRepository
	employeeRepo repositories.EmployeeRepository
}

// NewPayrollService creates a new payroll service
func NewPayrollService(payrollRepo repositories.PayrollRepository, employeeRepo repositories.EmployeeRepository) *PayrollService {
	return &PayrollService{
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
	}
}

// PayrollInput carries payroll create fields. Net pay is always computed
// server-side.
type PayrollInput struct {
	EmployeeID uint    `json:"employee_id"`
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	GrossPay   float64 `json:"gross_pay"`
	Deductions float64 `json:"deductions"`
}

// Create creates a payroll row for an employee/period
func (s *PayrollService) Create(ctx context.Context, input *PayrollInput) (*models.Payroll, error) {
	if input.Month < 1 || input.Month > 12 || input.Year < 2000 {
		return nil, ErrInvalidPeriod
	}
	if input.GrossPay <= 0 || input.Deductions < 0 || input.Deductions > input.GrossPay {
		return nil, ErrInvalidAmount
	}

	if _, err := s.employeeRepo.GetByID(ctx, input.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	exists, err := s.payrollRepo.ExistsForPeriod(ctx, input.EmployeeID, input.Year, input.Month)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrPayrollDuplicate
	}

	payroll := &models.Payroll{
		EmployeeID: input.EmployeeID,
		Year:       input.Year,
		Month:      input.Month,
		GrossPay:   input.GrossPay,
		Deductions: input.Deductions,
		NetPay:     input.GrossPay - input.Deductions,
		Status:     models.PayrollStatusPending,
	}
	if err := s.payrollRepo.Create(ctx, payroll); err != nil {
		return nil, err
	}
	return payroll, nil
}

// MarkPaid transitions a pending payroll to paid
func (s *PayrollService) MarkPaid(ctx context.Context, id uint) (*models.Payroll, error) {
	payroll, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPayrollNotFound
		}
		return nil, err
	}

	if payroll.Status == models.PayrollStatusPaid {
		return nil, ErrPayrollAlreadyPaid
	}

	now := time.Now()
	payroll.Status = models.PayrollStatusPaid
	payroll.PaidAt = &now

	if err := s.payrollRepo.Update(ctx, payroll); err != nil {
		return nil, err
	}
	return payroll, nil
}

// List lists payrolls for a period with optional employee filter
func (s *PayrollService) List(ctx context.Context, year, month int, employeeID *uint, offset, limit int) ([]*models.Payroll, int64, error) {
	if month < 1 || month > 12 {
		return nil, 0, ErrInvalidPeriod
	}
	return s.payrollRepo.List(ctx, year, month, employeeID, offset, limit)
}
