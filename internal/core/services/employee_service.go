package services

import (
	"context"
	"errors"

	"transit-backoffice/internal/adapters/persistence/models"
	"transit-backoffice/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Employee errors
var (
	ErrEmployeeNotFound = errors.New("employee not found")
)

// EmployeeService handles employee business logic
type EmployeeService struct {
	employeeRepo repositories.EmployeeRepository
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(employeeRepo repositories.EmployeeRepository) *EmployeeService {
	return &EmployeeService{employeeRepo: employeeRepo}
}

// EmployeeInput carries employee create/update fields
type EmployeeInput struct {
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Position   string  `json:"position"`
	BaseSalary float64 `json:"base_salary"`
	LocationID *uint   `json:"location_id"`
}

// Create creates a new employee
func (s *EmployeeService) Create(ctx context.Context, input *EmployeeInput) (*models.Employee, error) {
	employee := &models.Employee{
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Position:   input.Position,
		BaseSalary: input.BaseSalary,
		LocationID: input.LocationID,
		IsActive:   true,
	}
	if err := s.employeeRepo.Create(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// Get returns one employee
func (s *EmployeeService) Get(ctx context.Context, id uint) (*models.Employee, error) {
	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	return employee, nil
}

// Update updates an employee's fields
func (s *EmployeeService) Update(ctx context.Context, id uint, input *EmployeeInput) (*models.Employee, error) {
	employee, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	employee.FirstName = input.FirstName
	employee.LastName = input.LastName
	employee.Position = input.Position
	employee.BaseSalary = input.BaseSalary
	employee.LocationID = input.LocationID

	if err := s.employeeRepo.Update(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// Deactivate marks an employee inactive (no hard delete; payroll history
// keeps referencing the row)
func (s *EmployeeService) Deactivate(ctx context.Context, id uint) error {
	employee, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	employee.IsActive = false
	return s.employeeRepo.Update(ctx, employee)
}

// List lists employees with pagination and optional location filter
func (s *EmployeeService) List(ctx context.Context, locationID *uint, offset, limit int) ([]*models.Employee, int64, error) {
	return s.employeeRepo.List(ctx, locationID, offset, limit)
}
