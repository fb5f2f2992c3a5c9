package handlers

import (
	"errors"
	"strconv"

	"transit-backoffice/internal/adapters/http/middleware"
	"transit-backoffice/internal/core/authz"
	"transit-backoffice/internal/core/services"
	"transit-backoffice/internal/pkg/pagination"
	"transit-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// notificationMaxLimit caps notification pages below the global maximum
const notificationMaxLimit = 20

// NotificationHandler handles notification endpoints
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// List lists the caller's notifications, newest first, max 20 per page
// @Summary List notifications
// @Tags Notifications
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit (max 20)"
// @Success 200 {object} pagination.Response
// @Failure 401 {object} response.Rejection
// @Router /notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	params := pagination.GetParamsWithMax(c, notificationMaxLimit)

	notifications, total, err := h.notificationService.List(c.Context(), user.ID, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list notifications")
	}

	return c.JSON(pagination.NewResponse(notifications, params, total))
}

// MarkRead marks one notification read
// @Summary Mark a notification read
// @Tags Notifications
// @Produce json
// @Param id path int true "Notification ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} response.Rejection
// @Router /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid notification id")
	}

	if err := h.notificationService.MarkRead(c.Context(), uint(id), user.ID); err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			return response.NotFound(c, "Notification not found")
		}
		return response.InternalServerError(c, "Failed to mark notification read")
	}

	return c.JSON(fiber.Map{
		"message": "Notification marked read",
	})
}

// MarkAllRead marks all of the caller's notifications read
// @Summary Mark all notifications read
// @Tags Notifications
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /notifications/read-all [patch]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	if err := h.notificationService.MarkAllRead(c.Context(), user.ID); err != nil {
		return response.InternalServerError(c, "Failed to mark notifications read")
	}

	return c.JSON(fiber.Map{
		"message": "All notifications marked read",
	})
}

// BroadcastRequest represents an admin broadcast body
type BroadcastRequest struct {
	Role    string `json:"role"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Broadcast sends a notification to every active user holding a role
// @Summary Broadcast a notification to a role
// @Tags Notifications
// @Accept json
// @Produce json
// @Param body body BroadcastRequest true "Broadcast"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Rejection
// @Failure 403 {object} response.Rejection
// @Router /notifications/broadcast [post]
func (h *NotificationHandler) Broadcast(c *fiber.Ctx) error {
	var req BroadcastRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Title == "" || req.Role == "" {
		return response.BadRequest(c, "Role and title are required")
	}

	validRole := false
	for _, name := range authz.AllRoles {
		if req.Role == name {
			validRole = true
			break
		}
	}
	if !validRole {
		return response.BadRequest(c, "Unknown role")
	}

	sent, err := h.notificationService.NotifyRole(c.Context(), req.Role, req.Title, req.Message)
	if err != nil {
		return response.InternalServerError(c, "Failed to broadcast notification")
	}

	return c.JSON(fiber.Map{
		"sent": sent,
	})
}
