package services

import (
	"context"
	"errors"

	"transit-backoffice/internal/adapters/persistence/models"
	"transit-backoffice/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Fleet errors
var (
	ErrRouteNotFound    = errors.New("route not found")
	ErrVehicleNotFound  = errors.New("vehicle not found")
	ErrLocationNotFound = errors.New("location not found")
	ErrDuplicatePlate   = errors.New("vehicle plate number already exists")
)

// FleetService handles route and vehicle administration
type FleetService struct {
	fleetRepo    repositories.FleetRepository
	locationRepo repositories.LocationRepository
}

// NewFleetService creates a new fleet service
func NewFleetService(fleetRepo repositories.FleetRepository, locationRepo repositories.LocationRepository) *FleetService {
	return &FleetService{
		fleetRepo:    fleetRepo,
		locationRepo: locationRepo,
	}
}

// RouteInput carries route create/update fields
type RouteInput struct {
	Name        string  `json:"name"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	DistanceKm  float64 `json:"distance_km"`
	LocationID  uint    `json:"location_id"`
}

// CreateRoute creates a route
func (s *FleetService) CreateRoute(ctx context.Context, input *RouteInput) (*models.Route, error) {
	if err := s.checkLocation(ctx, input.LocationID); err != nil {
		return nil, err
	}

	route := &models.Route{
		Name:        input.Name,
		Origin:      input.Origin,
		Destination: input.Destination,
		DistanceKm:  input.DistanceKm,
		LocationID:  input.LocationID,
		IsActive:    true,
	}
	if err := s.fleetRepo.CreateRoute(ctx, route); err != nil {
		return nil, err
	}
	return route, nil
}

// UpdateRoute updates a route
func (s *FleetService) UpdateRoute(ctx context.Context, id uint, input *RouteInput) (*models.Route, error) {
	route, err := s.fleetRepo.GetRouteByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}

	if err := s.checkLocation(ctx, input.LocationID); err != nil {
		return nil, err
	}

	route.Name = input.Name
	route.Origin = input.Origin
	route.Destination = input.Destination
	route.DistanceKm = input.DistanceKm
	route.LocationID = input.LocationID

	if err := s.fleetRepo.UpdateRoute(ctx, route); err != nil {
		return nil, err
	}
	return route, nil
}

// ListRoutes lists routes with optional location filter
func (s *FleetService) ListRoutes(ctx context.Context, locationID *uint) ([]*models.Route, error) {
	return s.fleetRepo.ListRoutes(ctx, locationID)
}

// VehicleInput carries vehicle create/update fields
type VehicleInput struct {
	PlateNo    string `json:"plate_no"`
	Model      string `json:"model"`
	Capacity   int    `json:"capacity"`
	Status     string `json:"status"`
	RouteID    *uint  `json:"route_id"`
	LocationID uint   `json:"location_id"`
}

// CreateVehicle creates a vehicle
func (s *FleetService) CreateVehicle(ctx context.Context, input *VehicleInput) (*models.Vehicle, error) {
	if err := s.checkLocation(ctx, input.LocationID); err != nil {
		return nil, err
	}
	if input.RouteID != nil {
		if _, err := s.fleetRepo.GetRouteByID(ctx, *input.RouteID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRouteNotFound
			}
			return nil, err
		}
	}

	status := input.Status
	if status == "" {
		status = models.VehicleStatusActive
	}

	vehicle := &models.Vehicle{
		PlateNo:    input.PlateNo,
		Model:      input.Model,
		Capacity:   input.Capacity,
		Status:     status,
		RouteID:    input.RouteID,
		LocationID: input.LocationID,
	}
	if err := s.fleetRepo.CreateVehicle(ctx, vehicle); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicatePlate
		}
		return nil, err
	}
	return vehicle, nil
}

// UpdateVehicle updates a vehicle
func (s *FleetService) UpdateVehicle(ctx context.Context, id uint, input *VehicleInput) (*models.Vehicle, error) {
	vehicle, err := s.fleetRepo.GetVehicleByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}

	if err := s.checkLocation(ctx, input.LocationID); err != nil {
		return nil, err
	}

	vehicle.PlateNo = input.PlateNo
	vehicle.Model = input.Model
	vehicle.Capacity = input.Capacity
	if input.Status != "" {
		vehicle.Status = input.Status
	}
	vehicle.RouteID = input.RouteID
	vehicle.LocationID = input.LocationID

	if err := s.fleetRepo.UpdateVehicle(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// ListVehicles lists vehicles with optional location filter
func (s *FleetService) ListVehicles(ctx context.Context, locationID *uint) ([]*models.Vehicle, error) {
	return s.fleetRepo.ListVehicles(ctx, locationID)
}

func (s *FleetService) checkLocation(ctx context.Context, locationID uint) error {
	if _, err := s.locationRepo.GetByID(ctx, locationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLocationNotFound
		}
		return err
	}
	return nil
}
