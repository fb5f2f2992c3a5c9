package middleware

import (
	"context"
	"log"
	"strings"

	"transit-backoffice/internal/adapters/persistence/models"
	"transit-backoffice/internal/core/authz"
	"transit-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SessionCookieName is the fixed name of the session cookie
const SessionCookieName = "session_token"

// currentUserKey is the fiber locals key holding the resolved user
const currentUserKey = "currentUser"

// SessionResolver resolves a session token to an active user with roles
// and location loaded. A nil user with nil error means unauthenticated.
type SessionResolver interface {
	ResolveSession(ctx context.Context, sessionToken string) (*models.User, error)
}

// Session resolves the session cookie on every request and stores the
// user (possibly nil) in locals. It never rejects by itself; the Require
// guard does that per route.
func Session(resolver SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sessionToken string

		// 1. Try to get token from cookie first
		sessionToken = c.Cookies(SessionCookieName)

		// 2. If not in cookie, try Authorization header
		if sessionToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				sessionToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		user, err := resolver.ResolveSession(c.Context(), sessionToken)
		if err != nil {
			// Lookup failure (e.g. database down), not an auth decision
			log.Printf("❌ Session resolution failed: %v", err)
			return response.InternalServerError(c, "Internal Server Error")
		}

		if user != nil {
			c.Locals(currentUserKey, user)
		}

		return c.Next()
	}
}

// CurrentUser returns the resolved user for this request, or nil
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(currentUserKey).(*models.User)
	return user
}

// Require is the route guard: 401 when unauthenticated, 403 when the
// route's predicate rejects the user. Every protected route states its
// own predicate; there is no central policy engine.
func Require(pred authz.Predicate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return response.Unauthorized(c, "Authentication required")
		}

		if !pred(user) {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}

		return c.Next()
	}
}
