package repositories

import (
	"context"
	"time"

	"transit-backoffice/internal/adapters/persistence/models"
)

// UserRepository defines user data access. Reads return the user with
// roles and location eagerly loaded; the auth core never writes users.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// RoleRepository defines role data access
type RoleRepository interface {
	List(ctx context.Context) ([]*models.Role, error)
}

// LocationRepository defines location data access
type LocationRepository interface {
	List(ctx context.Context) ([]*models.Location, error)
	GetByID(ctx context.Context, id uint) (*models.Location, error)
}

// NotificationRepository defines notification data access
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]*models.Notification, int64, error)
	MarkRead(ctx context.Context, id, userID uint) (int64, error)
	MarkAllRead(ctx context.Context, userID uint) error
	DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error)
	UserIDsWithRole(ctx context.Context, roleName string) ([]uint, error)
}

// EmployeeRepository defines employee data access
type EmployeeRepository interface {
	Create(ctx context.Context, e *models.Employee) error
	GetByID(ctx context.Context, id uint) (*models.Employee, error)
	Update(ctx context.Context, e *models.Employee) error
	List(ctx context.Context, locationID *uint, offset, limit int) ([]*models.Employee, int64, error)
}

// PayrollRepository defines payroll data access
type PayrollRepository interface {
	Create(ctx context.Context, p *models.Payroll) error
	GetByID(ctx context.Context, id uint) (*models.Payroll, error)
	Update(ctx context.Context, p *models.Payroll) error
	List(ctx context.Context, year, month int, employeeID *uint, offset, limit int) ([]*models.Payroll, int64, error)
	ExistsForPeriod(ctx context.Context, employeeID uint, year, month int) (bool, error)
}

// BudgetRepository defines budget data access
type BudgetRepository interface {
	Create(ctx context.Context, b *models.Budget) error
	GetByID(ctx context.Context, id uint) (*models.Budget, error)
	Update(ctx context.Context, b *models.Budget) error
	List(ctx context.Context, year int, locationID *uint) ([]*models.Budget, error)
	ExistsForPeriod(ctx context.Context, locationID uint, category string, year, month int) (bool, error)
}

// ExpenseRepository defines expense data access
type ExpenseRepository interface {
	Create(ctx context.Context, e *models.Expense) error
	List(ctx context.Context, locationID *uint, offset, limit int) ([]*models.Expense, int64, error)
}

// RouteVehicleRow is one row of the routes-vehicles report
type RouteVehicleRow struct {
	RouteID      uint    `json:"route_id"`
	RouteName    string  `json:"route_name"`
	Origin       string  `json:"origin"`
	Destination  string  `json:"destination"`
	DistanceKm   float64 `json:"distance_km"`
	LocationID   uint    `json:"location_id"`
	LocationName string  `json:"location_name"`
	VehicleCount int64   `json:"vehicle_count"`
	TotalSeats   int64   `json:"total_seats"`
}

// FleetRepository defines route/vehicle data access and the report query
type FleetRepository interface {
	CreateRoute(ctx context.Context, r *models.Route) error
	UpdateRoute(ctx context.Context, r *models.Route) error
	GetRouteByID(ctx context.Context, id uint) (*models.Route, error)
	ListRoutes(ctx context.Context, locationID *uint) ([]*models.Route, error)

	CreateVehicle(ctx context.Context, v *models.Vehicle) error
	UpdateVehicle(ctx context.Context, v *models.Vehicle) error
	GetVehicleByID(ctx context.Context, id uint) (*models.Vehicle, error)
	ListVehicles(ctx context.Context, locationID *uint) ([]*models.Vehicle, error)

	RouteVehicleReport(ctx context.Context, locationID *uint) ([]*RouteVehicleRow, error)
}

// FileRepository defines stored file metadata access
type FileRepository interface {
	Create(ctx context.Context, f *models.StoredFile) error
	GetByID(ctx context.Context, id uint) (*models.StoredFile, error)
	Delete(ctx context.Context, id uint) error
}
