package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/maccam68/caredesk/internal/models"
	"github.com/maccam68/caredesk/internal/services"
	"github.com/maccam68/caredesk/internal/types"
	"gorm.io/gorm"
)

// SessionCookie is the cookie carrying the session token. Clients may send
// the token in the X-Session-Token header instead.
const SessionCookie = "caredesk_session"

// RequireUser validates the session and stores the user in context.
func RequireUser(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, db, false, "auth.authorization.user")
	}
}

// RequireAdmin validates the session and requires the admin role.
func RequireAdmin(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, db, true, "auth.authorization.admin")
	}
}

// authorize performs the session and role check
func authorize(c *fiber.Ctx, db *gorm.DB, adminOnly bool, errorType string) error {
	token := c.Cookies(SessionCookie)
	if token == "" {
		token = c.Get("X-Session-Token")
	}
	if token == "" {
		return &types.RequestError{
			Code:    fiber.StatusUnauthorized,
			Message: "Session cookie \"" + SessionCookie + "\" not found",
			Type:    errorType,
		}
	}

	user, err := services.ValidateSession(db, token)
	if err != nil {
		return &types.RequestError{
			Code:    fiber.StatusUnauthorized,
			Message: fmt.Sprintf("Invalid session: %v", err),
			Type:    errorType,
		}
	}

	if adminOnly && user.Role != models.RoleAdmin {
		return &types.RequestError{
			Code:    fiber.StatusForbidden,
			Message: "Admin role required",
			Type:    errorType,
		}
	}

	c.Locals("user", user)

	return c.Next()
}
