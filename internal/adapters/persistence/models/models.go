package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table. Password is write-only and never serialized.
type User struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Email      string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password   string         `gorm:"size:255;not null" json:"-"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	LocationID *uint          `gorm:"index" json:"location_id"`
	Location   *Location      `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	Roles      []Role         `gorm:"many2many:user_roles" json:"roles"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// RoleNames returns the user's role names in assignment order.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// UserResponse DTO returned by auth endpoints
type UserResponse struct {
	ID         uint     `json:"id"`
	Email      string   `json:"email"`
	LocationID *uint    `json:"locationId"`
	Roles      []string `json:"roles"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		LocationID: u.LocationID,
		Roles:      u.RoleNames(),
	}
}

// Role represents roles table. Names are free text in storage;
// comparisons go through the authz package constants.
type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:50;not null" json:"name"`
}

func (Role) TableName() string {
	return "roles"
}

// ============================================================
// Master Tables
// ============================================================

// Location represents a branch/depot
type Location struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Code      string         `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Location) TableName() string {
	return "locations"
}

// ============================================================
// Workforce Tables
// ============================================================

// Employee represents employees table
type Employee struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	FirstName  string         `gorm:"size:50;not null" json:"first_name"`
	LastName   string         `gorm:"size:50;not null" json:"last_name"`
	Position   string         `gorm:"size:100" json:"position"`
	BaseSalary float64        `gorm:"type:decimal(12,2);not null" json:"base_salary"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	LocationID *uint          `gorm:"index" json:"location_id"`
	Location   *Location      `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Employee) TableName() string {
	return "employees"
}

// Payroll statuses
const (
	PayrollStatusPending = "PENDING"
	PayrollStatusPaid    = "PAID"
)

// Payroll represents payrolls table
type Payroll struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	EmployeeID uint           `gorm:"index;not null" json:"employee_id"`
	Employee   *Employee      `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Year       int            `gorm:"not null;index:idx_payroll_period" json:"year"`
	Month      int            `gorm:"not null;index:idx_payroll_period" json:"month"`
	GrossPay   float64        `gorm:"type:decimal(12,2);not null" json:"gross_pay"`
	Deductions float64        `gorm:"type:decimal(12,2);default:0" json:"deductions"`
	NetPay     float64        `gorm:"type:decimal(12,2);not null" json:"net_pay"`
	Status     string         `gorm:"size:20;default:'PENDING'" json:"status"`
	PaidAt     *time.Time     `json:"paid_at"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Payroll) TableName() string {
	return "payrolls"
}

// ============================================================
// Finance Tables
// ============================================================

// Budget represents budgets table (one row per location/category/period)
type Budget struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	LocationID uint           `gorm:"index;not null" json:"location_id"`
	Location   *Location      `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	Category   string         `gorm:"size:50;not null" json:"category"`
	Year       int            `gorm:"not null" json:"year"`
	Month      int            `gorm:"not null" json:"month"`
	Amount     float64        `gorm:"type:decimal(12,2);not null" json:"amount"`
	Spent      float64        `gorm:"type:decimal(12,2);default:0" json:"spent"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Budget) TableName() string {
	return "budgets"
}

// Expense represents expenses table
type Expense struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	LocationID  uint           `gorm:"index;not null" json:"location_id"`
	Category    string         `gorm:"size:50;not null" json:"category"`
	Description string         `gorm:"size:255" json:"description"`
	Amount      float64        `gorm:"type:decimal(12,2);not null" json:"amount"`
	CreatedBy   uint           `gorm:"index;not null" json:"created_by"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Expense) TableName() string {
	return "expenses"
}

// ============================================================
// Fleet Tables
// ============================================================

// Route represents service routes table
type Route struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Origin      string         `gorm:"size:100;not null" json:"origin"`
	Destination string         `gorm:"size:100;not null" json:"destination"`
	DistanceKm  float64        `gorm:"type:decimal(8,2)" json:"distance_km"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	LocationID  uint           `gorm:"index;not null" json:"location_id"`
	Location    *Location      `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Route) TableName() string {
	return "routes"
}

// Vehicle statuses
const (
	VehicleStatusActive      = "ACTIVE"
	VehicleStatusMaintenance = "MAINTENANCE"
	VehicleStatusRetired     = "RETIRED"
)

// Vehicle represents vehicles table
type Vehicle struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	PlateNo    string         `gorm:"size:20;uniqueIndex;not null" json:"plate_no"`
	Model      string         `gorm:"size:100" json:"model"`
	Capacity   int            `json:"capacity"`
	Status     string         `gorm:"size:20;default:'ACTIVE'" json:"status"`
	RouteID    *uint          `gorm:"index" json:"route_id"`
	Route      *Route         `gorm:"foreignKey:RouteID" json:"route,omitempty"`
	LocationID uint           `gorm:"index;not null" json:"location_id"`
	Location   *Location      `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

// ============================================================
// Notification & File Tables
// ============================================================

// Notification represents notifications table
type Notification struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"index;not null" json:"user_id"`
	Title     string         `gorm:"size:100;not null" json:"title"`
	Message   string         `gorm:"size:500" json:"message"`
	IsRead    bool           `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}

// StoredFile represents stored_files table (metadata for the object store)
type StoredFile struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	StorageKey string         `gorm:"size:255;uniqueIndex;not null" json:"storage_key"`
	FileName   string         `gorm:"size:255;not null" json:"file_name"`
	SizeBytes  int64          `json:"size_bytes"`
	UploadedBy uint           `gorm:"index;not null" json:"uploaded_by"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (StoredFile) TableName() string {
	return "stored_files"
}

// AutoMigrate creates/updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Location{},
		&Role{},
		&User{},
		&Employee{},
		&Payroll{},
		&Budget{},
		&Expense{},
		&Route{},
		&Vehicle{},
		&Notification{},
		&StoredFile{},
	)
}
