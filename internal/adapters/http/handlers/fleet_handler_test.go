package handlers

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"transit-backoffice/internal/adapters/http/middleware"
	"transit-backoffice/internal/adapters/persistence/models"
	"transit-backoffice/internal/adapters/persistence/repositories"
	"transit-backoffice/internal/core/authz"
	"transit-backoffice/internal/core/services"
)

// fleetListRepo serves fixed routes/vehicles and records writes.
type fleetListRepo struct {
	repositories.FleetRepository

	routes        []*models.Route
	vehicles      []*models.Vehicle
	createdRoutes int
}

func (r *fleetListRepo) ListRoutes(_ context.Context, _ *uint) ([]*models.Route, error) {
	return r.routes, nil
}

func (r *fleetListRepo) ListVehicles(_ context.Context, _ *uint) ([]*models.Vehicle, error) {
	return r.vehicles, nil
}

func (r *fleetListRepo) CreateRoute(_ context.Context, route *models.Route) error {
	route.ID = uint(r.createdRoutes + 1)
	r.createdRoutes++
	return nil
}

// staticLocationRepo knows exactly one location.
type staticLocationRepo struct{}

func (staticLocationRepo) List(_ context.Context) ([]*models.Location, error) {
	return []*models.Location{{ID: 1, Code: "HQ", Name: "Headquarters"}}, nil
}

func (staticLocationRepo) GetByID(_ context.Context, id uint) (*models.Location, error) {
	if id != 1 {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.Location{ID: 1, Code: "HQ", Name: "Headquarters"}, nil
}

// newFleetApp mirrors the production mounting: listings behind the
// report policy, writes behind the fleet policy.
func newFleetApp(repo *fleetListRepo, users map[string]*models.User) *fiber.App {
	handler := NewFleetHandler(services.NewFleetService(repo, staticLocationRepo{}))

	app := fiber.New()
	app.Use(middleware.Session(&stubSessionResolver{users: users}))
	fleetRead := middleware.Require(authz.Policies[authz.SectionReports])
	fleetWrite := middleware.Require(authz.Policies[authz.SectionFleet])
	app.Get("/routes", fleetRead, handler.ListRoutes)
	app.Post("/routes", fleetWrite, handler.CreateRoute)
	app.Get("/vehicles", fleetRead, handler.ListVehicles)
	app.Post("/vehicles", fleetWrite, handler.CreateVehicle)
	return app
}

func TestFleetRoutes_ListingOpenToReportRoles(t *testing.T) {
	repo := &fleetListRepo{
		routes:   []*models.Route{{ID: 1, Name: "North Loop", LocationID: 1}},
		vehicles: []*models.Vehicle{{ID: 1, PlateNo: "TRN-1001", LocationID: 1}},
	}
	users := map[string]*models.User{
		"accountant": {ID: 1, IsActive: true, Roles: []models.Role{{Name: authz.RoleAccountant}}},
		"manager":    {ID: 2, IsActive: true, Roles: []models.Role{{Name: authz.RoleBusinessManager}}},
		"cashier":    {ID: 3, IsActive: true, Roles: []models.Role{{Name: authz.RoleCashier}}},
	}
	app := newFleetApp(repo, users)

	t.Run("accountant may list routes and vehicles", func(t *testing.T) {
		for _, path := range []string{"/routes", "/vehicles"} {
			resp, err := app.Test(withSession(httptest.NewRequest("GET", path, nil), "accountant"))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode, path)
		}
	})

	t.Run("accountant may not create", func(t *testing.T) {
		req := withSession(httptest.NewRequest("POST", "/routes", jsonReader(t, fiber.Map{
			"name": "Ghost", "origin": "A", "destination": "B", "location_id": 1,
		})), "accountant")
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
		assert.Zero(t, repo.createdRoutes)
	})

	t.Run("business manager may create", func(t *testing.T) {
		req := withSession(httptest.NewRequest("POST", "/routes", jsonReader(t, fiber.Map{
			"name": "South Loop", "origin": "Central", "destination": "Southgate", "location_id": 1,
		})), "manager")
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
		assert.Equal(t, 1, repo.createdRoutes)
	})

	t.Run("cashier sees neither", func(t *testing.T) {
		for _, path := range []string{"/routes", "/vehicles"} {
			resp, err := app.Test(withSession(httptest.NewRequest("GET", path, nil), "cashier"))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusForbidden, resp.StatusCode, path)
		}
	})
}
