package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"transit-backoffice/internal/adapters/persistence/models"
)

// fakePayrollRepo is an in-memory PayrollRepository.
type fakePayrollRepo struct {
	payrolls map[uint]*models.Payroll
	nextID   uint
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{payrolls: make(map[uint]*models.Payroll), nextID: 1}
}

func (r *fakePayrollRepo) Create(_ context.Context, p *models.Payroll) error {
	p.ID = r.nextID
	r.nextID++
	r.payrolls[p.ID] = p
	return nil
}

func (r *fakePayrollRepo) GetByID(_ context.Context, id uint) (*models.Payroll, error) {
	p, ok := r.payrolls[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakePayrollRepo) Update(_ context.Context, p *models.Payroll) error {
	r.payrolls[p.ID] = p
	return nil
}

func (r *fakePayrollRepo) List(_ context.Context, year, month int, employeeID *uint, offset, limit int) ([]*models.Payroll, int64, error) {
	var out []*models.Payroll
	for _, p := range r.payrolls {
		if p.Year != year || p.Month != month {
			continue
		}
		if employeeID != nil && p.EmployeeID != *employeeID {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r *fakePayrollRepo) ExistsForPeriod(_ context.Context, employeeID uint, year, month int) (bool, error) {
	for _, p := range r.payrolls {
		if p.EmployeeID == employeeID && p.Year == year && p.Month == month {
			return true, nil
		}
	}
	return false, nil
}

// fakeEmployeeRepo holds a fixed employee set.
type fakeEmployeeRepo struct {
	employees map[uint]*models.Employee
}

func (r *fakeEmployeeRepo) Create(_ context.Context, e *models.Employee) error {
	r.employees[e.ID] = e
	return nil
}

func (r *fakeEmployeeRepo) GetByID(_ context.Context, id uint) (*models.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, e *models.Employee) error {
	r.employees[e.ID] = e
	return nil
}

func (r *fakeEmployeeRepo) List(_ context.Context, _ *uint, _, _ int) ([]*models.Employee, int64, error) {
	var out []*models.Employee
	for _, e := range r.employees {
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func newPayrollService() (*PayrollService, *fakePayrollRepo) {
	payrollRepo := newFakePayrollRepo()
	employeeRepo := &fakeEmployeeRepo{employees: map[uint]*models.Employee{
		1: {ID: 1, FirstName: "Dana", LastName: "Vega", BaseSalary: 3200, IsActive: true},
	}}
	return NewPayrollService(payrollRepo, employeeRepo), payrollRepo
}

func TestPayrollService_Create(t *testing.T) {
	t.Run("computes net pay and starts pending", func(t *testing.T) {
		svc, _ := newPayrollService()

		p, err := svc.Create(context.Background(), &PayrollInput{
			EmployeeID: 1, Year: 2026, Month: 8, GrossPay: 3200, Deductions: 450,
		})
		require.NoError(t, err)
		assert.Equal(t, 2750.0, p.NetPay)
		assert.Equal(t, models.PayrollStatusPending, p.Status)
		assert.Nil(t, p.PaidAt)
	})

	t.Run("validation", func(t *testing.T) {
		svc, _ := newPayrollService()

		tests := []struct {
			name    string
			input   PayrollInput
			wantErr error
		}{
			{"month zero", PayrollInput{EmployeeID: 1, Year: 2026, Month: 0, GrossPay: 100}, ErrInvalidPeriod},
			{"month thirteen", PayrollInput{EmployeeID: 1, Year: 2026, Month: 13, GrossPay: 100}, ErrInvalidPeriod},
			{"ancient year", PayrollInput{EmployeeID: 1, Year: 1999, Month: 1, GrossPay: 100}, ErrInvalidPeriod},
			{"zero gross", PayrollInput{EmployeeID: 1, Year: 2026, Month: 1, GrossPay: 0}, ErrInvalidAmount},
			{"negative deductions", PayrollInput{EmployeeID: 1, Year: 2026, Month: 1, GrossPay: 100, Deductions: -1}, ErrInvalidAmount},
			{"deductions above gross", PayrollInput{EmployeeID: 1, Year: 2026, Month: 1, GrossPay: 100, Deductions: 101}, ErrInvalidAmount},
			{"unknown employee", PayrollInput{EmployeeID: 99, Year: 2026, Month: 1, GrossPay: 100}, ErrEmployeeNotFound},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Create(context.Background(), &tt.input)
				assert.ErrorIs(t, err, tt.wantErr)
			})
		}
	})

	t.Run("duplicate period rejected", func(t *testing.T) {
		svc, _ := newPayrollService()
		input := &PayrollInput{EmployeeID: 1, Year: 2026, Month: 8, GrossPay: 3200}

		_, err := svc.Create(context.Background(), input)
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), input)
		assert.ErrorIs(t, err, ErrPayrollDuplicate)
	})
}

func TestPayrollService_MarkPaid(t *testing.T) {
	svc, _ := newPayrollService()

	p, err := svc.Create(context.Background(), &PayrollInput{
		EmployeeID: 1, Year: 2026, Month: 8, GrossPay: 3200, Deductions: 450,
	})
	require.NoError(t, err)

	paid, err := svc.MarkPaid(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PayrollStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)

	_, err = svc.MarkPaid(context.Background(), p.ID)
	assert.ErrorIs(t, err, ErrPayrollAlreadyPaid)

	_, err = svc.MarkPaid(context.Background(), 999)
	assert.ErrorIs(t, err, ErrPayrollNotFound)
}

func TestPayrollService_List_InvalidMonth(t *testing.T) {
	svc, _ := newPayrollService()

	_, _, err := svc.List(context.Background(), 2026, 0, nil, 0, 20)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}
