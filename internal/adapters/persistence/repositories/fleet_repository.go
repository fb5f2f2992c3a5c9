package repositories

import (
	"context"

	"transit-backoffice/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// fleetRepository implements FleetRepository interface
type fleetRepository struct {
	db *gorm.DB
}

// NewFleetRepository creates a new fleet repository
func NewFleetRepository(db *gorm.DB) FleetRepository {
	return &fleetRepository{db: db}
}

// CreateRoute creates a route
func (r *fleetRepository) CreateRoute(ctx context.Context, route *models.Route) error {
	return r.db.WithContext(ctx).Create(route).Error
}

// UpdateRoute updates a route
func (r *fleetRepository) UpdateRoute(ctx context.Context, route *models.Route) error {
	return r.db.WithContext(ctx).Save(route).Error
}

// GetRouteByID gets a route by ID
func (r *fleetRepository) GetRouteByID(ctx context.Context, id uint) (*models.Route, error) {
	var route models.Route
	err := r.db.WithContext(ctx).Preload("Location").Where("id = ?", id).First(&route).Error
	if err != nil {
		return nil, err
	}
	return &route, nil
}

// ListRoutes lists routes with optional location filter
func (r *fleetRepository) ListRoutes(ctx context.Context, locationID *uint) ([]*models.Route, error) {
	var routes []*models.Route

	query := r.db.WithContext(ctx)
	if locationID != nil {
		query = query.Where("location_id = ?", *locationID)
	}

	if err := query.Preload("Location").Order("name").Find(&routes).Error; err != nil {
		return nil, err
	}
	return routes, nil
}

// CreateVehicle creates a vehicle
func (r *fleetRepository) CreateVehicle(ctx context.Context, v *models.Vehicle) error {
	return r.db.WithContext(ctx).Create(v).Error
}

// UpdateVehicle updates a vehicle
func (r *fleetRepository) UpdateVehicle(ctx context.Context, v *models.Vehicle) error {
	return r.db.WithContext(ctx).Save(v).Error
}

// GetVehicleByID gets a vehicle by ID
func (r *fleetRepository) GetVehicleByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.db.WithContext(ctx).Preload("Route").Preload("Location").
		Where("id = ?", id).First(&vehicle).Error
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// ListVehicles lists vehicles with optional location filter
func (r *fleetRepository) ListVehicles(ctx context.Context, locationID *uint) ([]*models.Vehicle, error) {
	var vehicles []*models.Vehicle

	query := r.db.WithContext(ctx)
	if locationID != nil {
		query = query.Where("location_id = ?", *locationID)
	}

	if err := query.Preload("Route").Preload("Location").Order("plate_no").Find(&vehicles).Error; err != nil {
		return nil, err
	}
	return vehicles, nil
}

// RouteVehicleReport aggregates active vehicles per route, optionally
// scoped to one location.
func (r *fleetRepository) RouteVehicleReport(ctx context.Context, locationID *uint) ([]*RouteVehicleRow, error) {
	var rows []*RouteVehicleRow

	query := r.db.WithContext(ctx).
		Table("routes").
		Select(`routes.id AS route_id,
			routes.name AS route_name,
			routes.origin,
			routes.destination,
			routes.distance_km,
			routes.location_id,
			locations.name AS location_name,
			COUNT(vehicles.id) AS vehicle_count,
			COALESCE(SUM(vehicles.capacity), 0) AS total_seats`).
		Joins("JOIN locations ON locations.id = routes.location_id").
		Joins("LEFT JOIN vehicles ON vehicles.route_id = routes.id AND vehicles.status = ? AND vehicles.deleted_at IS NULL", models.VehicleStatusActive).
		Where("routes.deleted_at IS NULL")

	if locationID != nil {
		query = query.Where("routes.location_id = ?", *locationID)
	}

	err := query.Group("routes.id, routes.name, routes.origin, routes.destination, routes.distance_km, routes.location_id, locations.name").
		Order("routes.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
