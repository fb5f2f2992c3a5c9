package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transit-backoffice/internal/adapters/http/middleware"
	"transit-backoffice/internal/adapters/persistence/models"
	"transit-backoffice/internal/core/authz"
	"transit-backoffice/internal/core/services"
)

// stubSessionResolver maps fixed token strings to users for handler tests.
type stubSessionResolver struct {
	users map[string]*models.User
}

func (r *stubSessionResolver) ResolveSession(_ context.Context, sessionToken string) (*models.User, error) {
	return r.users[sessionToken], nil
}

func withSession(req *http.Request, token string) *http.Request {
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	return req
}

func jsonReader(t *testing.T, body interface{}) *bytes.Reader {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	return bytes.NewReader(payload)
}

// fakeNotificationRepo is an in-memory NotificationRepository recording
// the paging values it receives.
type fakeNotificationRepo struct {
	notifications []*models.Notification
	roleUserIDs   map[string][]uint

	lastOffset int
	lastLimit  int
	created    []*models.Notification
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	n.ID = uint(len(r.created) + 1)
	r.created = append(r.created, n)
	return nil
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID uint, offset, limit int) ([]*models.Notification, int64, error) {
	r.lastOffset = offset
	r.lastLimit = limit

	var owned []*models.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			owned = append(owned, n)
		}
	}
	if offset >= len(owned) {
		return nil, int64(len(owned)), nil
	}
	end := offset + limit
	if end > len(owned) {
		end = len(owned)
	}
	return owned[offset:end], int64(len(owned)), nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id, userID uint) (int64, error) {
	for _, n := range r.notifications {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, userID uint) error {
	for _, n := range r.notifications {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) DeleteReadBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var kept []*models.Notification
	deleted := int64(0)
	for _, n := range r.notifications {
		if n.IsRead && n.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, n)
	}
	r.notifications = kept
	return deleted, nil
}

func (r *fakeNotificationRepo) UserIDsWithRole(_ context.Context, roleName string) ([]uint, error) {
	return r.roleUserIDs[roleName], nil
}

func newNotificationApp(repo *fakeNotificationRepo, users map[string]*models.User) *fiber.App {
	handler := NewNotificationHandler(services.NewNotificationService(repo, nil))

	app := fiber.New()
	app.Use(middleware.Session(&stubSessionResolver{users: users}))
	group := app.Group("/notifications", middleware.Require(authz.Policies[authz.SectionNotifications]))
	group.Get("/", handler.List)
	group.Patch("/:id/read", handler.MarkRead)
	group.Patch("/read-all", handler.MarkAllRead)
	group.Post("/broadcast", middleware.Require(authz.IsAdmin), handler.Broadcast)
	return app
}

func cashierUser(id uint) *models.User {
	return &models.User{ID: id, IsActive: true, Roles: []models.Role{{Name: authz.RoleCashier}}}
}

func TestNotificationHandler_List_LimitClamp(t *testing.T) {
	repo := &fakeNotificationRepo{}
	for i := 1; i <= 30; i++ {
		repo.notifications = append(repo.notifications, &models.Notification{
			ID: uint(i), UserID: 7, Title: "n",
		})
	}
	app := newNotificationApp(repo, map[string]*models.User{"tok": cashierUser(7)})

	resp, err := app.Test(withSession(httptest.NewRequest("GET", "/notifications/?limit=999", nil), "tok"))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, 20, repo.lastLimit, "limit must clamp to the notification ceiling")

	body := decodeBody(t, resp)
	meta, ok := body["meta"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(20), meta["limit"])
	assert.Equal(t, float64(30), meta["total"])

	rows, ok := body["data"].([]interface{})
	require.True(t, ok)
	assert.Len(t, rows, 20)
}

func TestNotificationHandler_List_RequiresSession(t *testing.T) {
	app := newNotificationApp(&fakeNotificationRepo{}, nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/notifications/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestNotificationHandler_MarkRead(t *testing.T) {
	repo := &fakeNotificationRepo{notifications: []*models.Notification{
		{ID: 1, UserID: 7},
		{ID: 2, UserID: 8},
	}}
	app := newNotificationApp(repo, map[string]*models.User{"tok": cashierUser(7)})

	t.Run("own notification", func(t *testing.T) {
		resp, err := app.Test(withSession(httptest.NewRequest("PATCH", "/notifications/1/read", nil), "tok"))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.True(t, repo.notifications[0].IsRead)
	})

	t.Run("someone else's notification reads as missing", func(t *testing.T) {
		resp, err := app.Test(withSession(httptest.NewRequest("PATCH", "/notifications/2/read", nil), "tok"))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		assert.False(t, repo.notifications[1].IsRead)
	})

	t.Run("unknown id", func(t *testing.T) {
		resp, err := app.Test(withSession(httptest.NewRequest("PATCH", "/notifications/99/read", nil), "tok"))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestNotificationHandler_Broadcast(t *testing.T) {
	repo := &fakeNotificationRepo{roleUserIDs: map[string][]uint{
		authz.RoleAccountant: {3, 4},
	}}
	admin := &models.User{ID: 1, IsActive: true, Roles: []models.Role{{Name: authz.RoleAdmin}}}
	app := newNotificationApp(repo, map[string]*models.User{
		"admin-tok":   admin,
		"cashier-tok": cashierUser(7),
	})

	t.Run("admin broadcast fans out to role holders", func(t *testing.T) {
		req := withSession(httptest.NewRequest("POST", "/notifications/broadcast", jsonReader(t, fiber.Map{
			"role": authz.RoleAccountant, "title": "Payroll due", "message": "Run the monthly payroll",
		})), "admin-tok")
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, float64(2), decodeBody(t, resp)["sent"])
		assert.Len(t, repo.created, 2)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		req := withSession(httptest.NewRequest("POST", "/notifications/broadcast", jsonReader(t, fiber.Map{
			"role": "Janitor", "title": "x",
		})), "admin-tok")
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		req := withSession(httptest.NewRequest("POST", "/notifications/broadcast", jsonReader(t, fiber.Map{
			"role": authz.RoleAccountant, "title": "x",
		})), "cashier-tok")
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}
