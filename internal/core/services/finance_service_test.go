package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"transit-backoffice/internal/adapters/persistence/models"
	"transit-backoffice/internal/core/authz"
)

// fakeBudgetRepo is an in-memory BudgetRepository.
type fakeBudgetRepo struct {
	budgets map[uint]*models.Budget
	nextID  uint
}

func newFakeBudgetRepo() *fakeBudgetRepo {
	return &fakeBudgetRepo{budgets: make(map[uint]*models.Budget), nextID: 1}
}

func (r *fakeBudgetRepo) Create(_ context.Context, b *models.Budget) error {
	b.ID = r.nextID
	r.nextID++
	r.budgets[b.ID] = b
	return nil
}

func (r *fakeBudgetRepo) GetByID(_ context.Context, id uint) (*models.Budget, error) {
	b, ok := r.budgets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (r *fakeBudgetRepo) Update(_ context.Context, b *models.Budget) error {
	r.budgets[b.ID] = b
	return nil
}

func (r *fakeBudgetRepo) List(_ context.Context, year int, locationID *uint) ([]*models.Budget, error) {
	var out []*models.Budget
	for _, b := range r.budgets {
		if b.Year != year {
			continue
		}
		if locationID != nil && b.LocationID != *locationID {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *fakeBudgetRepo) ExistsForPeriod(_ context.Context, locationID uint, category string, year, month int) (bool, error) {
	for _, b := range r.budgets {
		if b.LocationID == locationID && b.Category == category && b.Year == year && b.Month == month {
			return true, nil
		}
	}
	return false, nil
}

// fakeLocationRepo holds fixed locations.
type fakeLocationRepo struct {
	locations map[uint]*models.Location
}

func (r *fakeLocationRepo) List(_ context.Context) ([]*models.Location, error) {
	var out []*models.Location
	for _, l := range r.locations {
		out = append(out, l)
	}
	return out, nil
}

func (r *fakeLocationRepo) GetByID(_ context.Context, id uint) (*models.Location, error) {
	l, ok := r.locations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return l, nil
}

// fakeExpenseRepo records the scope List received.
type fakeExpenseRepo struct {
	expenses  []*models.Expense
	lastScope *uint
	scopeNil  bool
}

func (r *fakeExpenseRepo) Create(_ context.Context, e *models.Expense) error {
	e.ID = uint(len(r.expenses) + 1)
	r.expenses = append(r.expenses, e)
	return nil
}

func (r *fakeExpenseRepo) List(_ context.Context, locationID *uint, offset, limit int) ([]*models.Expense, int64, error) {
	r.lastScope = locationID
	r.scopeNil = locationID == nil
	return r.expenses, int64(len(r.expenses)), nil
}

func newBudgetService() *BudgetService {
	return NewBudgetService(newFakeBudgetRepo(), &fakeLocationRepo{
		locations: map[uint]*models.Location{1: {ID: 1, Code: "HQ", Name: "Headquarters"}},
	})
}

func TestBudgetService_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := newBudgetService()

		b, err := svc.Create(context.Background(), &BudgetInput{
			LocationID: 1, Category: "fuel", Year: 2026, Month: 9, Amount: 12000,
		})
		require.NoError(t, err)
		assert.Equal(t, 12000.0, b.Amount)
		assert.Zero(t, b.Spent)
	})

	t.Run("unknown location", func(t *testing.T) {
		svc := newBudgetService()

		_, err := svc.Create(context.Background(), &BudgetInput{
			LocationID: 99, Category: "fuel", Year: 2026, Month: 9, Amount: 12000,
		})
		assert.ErrorIs(t, err, ErrLocationNotFound)
	})

	t.Run("duplicate location/category/period", func(t *testing.T) {
		svc := newBudgetService()
		input := &BudgetInput{LocationID: 1, Category: "fuel", Year: 2026, Month: 9, Amount: 12000}

		_, err := svc.Create(context.Background(), input)
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), input)
		assert.ErrorIs(t, err, ErrBudgetDuplicate)
	})

	t.Run("invalid input", func(t *testing.T) {
		svc := newBudgetService()

		_, err := svc.Create(context.Background(), &BudgetInput{LocationID: 1, Category: "fuel", Year: 2026, Month: 13, Amount: 1})
		assert.ErrorIs(t, err, ErrInvalidPeriod)

		_, err = svc.Create(context.Background(), &BudgetInput{LocationID: 1, Category: "", Year: 2026, Month: 9, Amount: 1})
		assert.ErrorIs(t, err, ErrInvalidAmount)

		_, err = svc.Create(context.Background(), &BudgetInput{LocationID: 1, Category: "fuel", Year: 2026, Month: 9, Amount: 0})
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestBudgetService_UpdateAmount(t *testing.T) {
	svc := newBudgetService()

	b, err := svc.Create(context.Background(), &BudgetInput{
		LocationID: 1, Category: "fuel", Year: 2026, Month: 9, Amount: 12000,
	})
	require.NoError(t, err)

	updated, err := svc.UpdateAmount(context.Background(), b.ID, 15000)
	require.NoError(t, err)
	assert.Equal(t, 15000.0, updated.Amount)

	_, err = svc.UpdateAmount(context.Background(), b.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = svc.UpdateAmount(context.Background(), 99, 100)
	assert.ErrorIs(t, err, ErrBudgetNotFound)
}

func TestExpenseService_Create(t *testing.T) {
	loc := uint(2)
	cashier := &models.User{ID: 7, IsActive: true, LocationID: &loc,
		Roles: []models.Role{{Name: authz.RoleCashier}}}

	t.Run("expense is pinned to the caller's location", func(t *testing.T) {
		repo := &fakeExpenseRepo{}
		svc := NewExpenseService(repo)

		e, err := svc.Create(context.Background(), cashier, &ExpenseInput{
			Category: "maintenance", Description: "brake pads", Amount: 340,
		})
		require.NoError(t, err)
		assert.Equal(t, uint(2), e.LocationID)
		assert.Equal(t, uint(7), e.CreatedBy)
	})

	t.Run("caller without location cannot record", func(t *testing.T) {
		svc := NewExpenseService(&fakeExpenseRepo{})
		homeless := &models.User{ID: 8, IsActive: true}

		_, err := svc.Create(context.Background(), homeless, &ExpenseInput{Category: "misc", Amount: 10})
		assert.ErrorIs(t, err, ErrLocationNotFound)
	})
}

func TestExpenseService_List_Scoping(t *testing.T) {
	loc := uint(2)

	t.Run("accountant sees all locations", func(t *testing.T) {
		repo := &fakeExpenseRepo{}
		svc := NewExpenseService(repo)
		accountant := &models.User{ID: 1, IsActive: true, LocationID: &loc,
			Roles: []models.Role{{Name: authz.RoleAccountant}}}

		_, _, err := svc.List(context.Background(), accountant, 0, 20)
		require.NoError(t, err)
		assert.True(t, repo.scopeNil)
	})

	t.Run("cashier is scoped to own location", func(t *testing.T) {
		repo := &fakeExpenseRepo{}
		svc := NewExpenseService(repo)
		cashier := &models.User{ID: 7, IsActive: true, LocationID: &loc,
			Roles: []models.Role{{Name: authz.RoleCashier}}}

		_, _, err := svc.List(context.Background(), cashier, 0, 20)
		require.NoError(t, err)
		require.NotNil(t, repo.lastScope)
		assert.Equal(t, uint(2), *repo.lastScope)
	})

	t.Run("cashier without location sees nothing", func(t *testing.T) {
		repo := &fakeExpenseRepo{expenses: []*models.Expense{{ID: 1}}}
		svc := NewExpenseService(repo)
		homeless := &models.User{ID: 8, IsActive: true,
			Roles: []models.Role{{Name: authz.RoleCashier}}}

		rows, total, err := svc.List(context.Background(), homeless, 0, 20)
		require.NoError(t, err)
		assert.Empty(t, rows)
		assert.Zero(t, total)
	})
}
