package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"transit-backoffice/internal/adapters/cache"
	"transit-backoffice/internal/adapters/persistence/models"
	"transit-backoffice/internal/adapters/persistence/repositories"
	"transit-backoffice/internal/core/authz"
)

// reportCacheTTL keeps report payloads briefly; fleet data changes
// rarely within a minute and the report joins several tables.
const reportCacheTTL = 60 * time.Second

// ReportService produces the routes-vehicles report with per-user
// location scoping.
type ReportService struct {
	fleetRepo repositories.FleetRepository
	cache     *cache.Cache
}

// NewReportService creates a new report service
func NewReportService(fleetRepo repositories.FleetRepository, reportCache *cache.Cache) *ReportService {
	return &ReportService{
		fleetRepo: fleetRepo,
		cache:     reportCache,
	}
}

// RoutesVehicles returns the report scoped for the given user. Super
// Admins and Accountants may request any location (nil = all); everyone
// else is forced to their own location regardless of what they asked
// for. A scoped user without a location sees an empty report.
func (s *ReportService) RoutesVehicles(ctx context.Context, user *models.User, requestedLocation *uint) ([]*repositories.RouteVehicleRow, error) {
	scope := requestedLocation
	if !authz.CanViewWideLocation(user) {
		if user.LocationID == nil {
			return []*repositories.RouteVehicleRow{}, nil
		}
		scope = user.LocationID
	}

	key := reportCacheKey(scope)
	if s.cache != nil {
		if payload, ok := s.cache.Get(ctx, key); ok {
			var rows []*repositories.RouteVehicleRow
			if err := json.Unmarshal(payload, &rows); err == nil {
				return rows, nil
			}
		}
	}

	rows, err := s.fleetRepo.RouteVehicleReport(ctx, scope)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(rows); err == nil {
			s.cache.Set(ctx, key, payload, reportCacheTTL)
		}
	}
	return rows, nil
}

func reportCacheKey(locationID *uint) string {
	if locationID == nil {
		return "report:routes-vehicles:all"
	}
	return fmt.Sprintf("report:routes-vehicles:loc:%d", *locationID)
}
