package handlers

import (
	"errors"
	"time"

	"transit-backoffice/internal/adapters/http/middleware"
	"transit-backoffice/internal/config"
	"transit-backoffice/internal/core/authz"
	"transit-backoffice/internal/core/services"
	"transit-backoffice/internal/pkg/metrics"
	"transit-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// loginFailedMessage is deliberately identical for unknown email, wrong
// password and inactive accounts, so responses cannot be used to
// enumerate accounts.
const loginFailedMessage = "Invalid email or password"

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user login
// @Summary Login user
// @Description Authenticate by email/password and set the session cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} response.Rejection
// @Failure 401 {object} response.Rejection
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Email and password are required")
	}

	// One message for every missing-field combination
	if req.Email == "" || req.Password == "" {
		return response.BadRequest(c, "Email and password are required")
	}

	user, sessionToken, err := h.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			metrics.RecordLogin(false)
			return response.Unauthorized(c, loginFailedMessage)
		}
		return response.InternalServerError(c, "Failed to login")
	}

	metrics.RecordLogin(true)
	h.setSessionCookie(c, sessionToken)

	return c.JSON(fiber.Map{
		"user": user.ToResponse(),
	})
}

// Logout handles user logout. Sessions are self-contained tokens with no
// server-side record, so logout only clears the cookie.
// @Summary Logout user
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.clearSessionCookie(c)
	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}

// Me returns the current user info
// @Summary Get current user
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"user": nil,
		})
	}

	return c.JSON(fiber.Map{
		"user": user.ToResponse(),
	})
}

// Permissions returns the caller's role flags and visible sections. The
// UI gates navigation on this; the server guard stays authoritative.
// @Summary Get current user's permissions
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} response.Rejection
// @Router /auth/permissions [get]
func (h *AuthHandler) Permissions(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	return c.JSON(fiber.Map{
		"roles":        user.RoleNames(),
		"isAdmin":      authz.IsAdmin(user),
		"isSuperAdmin": authz.IsSuperAdmin(user),
		"sections":     authz.VisibleSections(user),
	})
}

// setSessionCookie sets the session cookie with max-age equal to the
// token TTL
func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, sessionToken string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sessionToken,
		Path:     "/",
		MaxAge:   h.cfg.Session.TTLSeconds,
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}

// clearSessionCookie clears the session cookie
func (h *AuthHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}
