package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transit-backoffice/internal/adapters/persistence/models"
	"transit-backoffice/internal/adapters/persistence/repositories"
	"transit-backoffice/internal/core/authz"
)

// fakeFleetRepo records the location scope the report query received.
type fakeFleetRepo struct {
	repositories.FleetRepository

	rows       []*repositories.RouteVehicleRow
	calls      int
	lastScope  *uint
	scopeIsNil bool
}

func (r *fakeFleetRepo) RouteVehicleReport(_ context.Context, locationID *uint) ([]*repositories.RouteVehicleRow, error) {
	r.calls++
	r.lastScope = locationID
	r.scopeIsNil = locationID == nil
	return r.rows, nil
}

func uintPtr(v uint) *uint { return &v }

func TestReportService_RoutesVehicles_Scoping(t *testing.T) {
	rows := []*repositories.RouteVehicleRow{{RouteID: 1, RouteName: "North Loop", LocationID: 2}}

	scopedUser := func(roles []string, locationID *uint) *models.User {
		u := &models.User{ID: 10, Email: "u@example.com", IsActive: true, LocationID: locationID}
		for _, name := range roles {
			u.Roles = append(u.Roles, models.Role{Name: name})
		}
		return u
	}

	tests := []struct {
		name      string
		user      *models.User
		requested *uint
		wantScope *uint
		wantNil   bool
	}{
		{
			name:      "super admin may request any location",
			user:      scopedUser([]string{authz.RoleSuperAdmin}, uintPtr(1)),
			requested: uintPtr(3),
			wantScope: uintPtr(3),
		},
		{
			name:      "accountant with no filter sees all locations",
			user:      scopedUser([]string{authz.RoleAccountant}, uintPtr(1)),
			requested: nil,
			wantNil:   true,
		},
		{
			name:      "business manager is forced to own location",
			user:      scopedUser([]string{authz.RoleBusinessManager}, uintPtr(2)),
			requested: uintPtr(5),
			wantScope: uintPtr(2),
		},
		{
			name:      "admin without filter still scoped to own location",
			user:      scopedUser([]string{authz.RoleAdmin}, uintPtr(2)),
			requested: nil,
			wantScope: uintPtr(2),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeFleetRepo{rows: rows}
			svc := NewReportService(repo, nil)

			got, err := svc.RoutesVehicles(context.Background(), tt.user, tt.requested)
			require.NoError(t, err)
			assert.Equal(t, rows, got)
			require.Equal(t, 1, repo.calls)

			if tt.wantNil {
				assert.True(t, repo.scopeIsNil)
			} else {
				require.NotNil(t, repo.lastScope)
				assert.Equal(t, *tt.wantScope, *repo.lastScope)
			}
		})
	}
}

func TestReportService_RoutesVehicles_NoLocation(t *testing.T) {
	repo := &fakeFleetRepo{rows: []*repositories.RouteVehicleRow{{RouteID: 1}}}
	svc := NewReportService(repo, nil)

	user := &models.User{ID: 10, IsActive: true, Roles: []models.Role{{Name: authz.RoleCashier}}}

	got, err := svc.RoutesVehicles(context.Background(), user, uintPtr(3))
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, repo.calls, "a scoped user without a location must not hit the report query")
}
