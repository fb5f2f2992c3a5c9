package repositories

import (
	"context"

	"transit-backoffice/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// roleRepository implements RoleRepository interface
type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository creates a new role repository
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

// List lists all roles
func (r *roleRepository) List(ctx context.Context) ([]*models.Role, error) {
	var roles []*models.Role
	if err := r.db.WithContext(ctx).Order("id").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// locationRepository implements LocationRepository interface
type locationRepository struct {
	db *gorm.DB
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

// List lists all locations
func (r *locationRepository) List(ctx context.Context) ([]*models.Location, error) {
	var locations []*models.Location
	if err := r.db.WithContext(ctx).Order("id").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// GetByID gets a location by ID
func (r *locationRepository) GetByID(ctx context.Context, id uint) (*models.Location, error) {
	var location models.Location
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&location).Error; err != nil {
		return nil, err
	}
	return &location, nil
}
