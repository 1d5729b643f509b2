package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/maccam68/caredesk/internal/middleware"
	"github.com/maccam68/caredesk/internal/models"
	"github.com/maccam68/caredesk/internal/services"
	"github.com/maccam68/caredesk/internal/utils"
	"gorm.io/gorm"
)

// AuthHandler handles login, logout and session routes
type AuthHandler struct {
	DB *gorm.DB
}

// LoginResponse is the payload returned on a successful login.
type LoginResponse struct {
	User      models.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// Login handles POST /api/auth/login
// @Summary Log in with username and PIN
// @Description Validate credentials against the user list and issue a session token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body object true "Username and PIN"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body struct {
		Username string `json:"username"`
		Pin      string `json:"pin"`
	}
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Invalid request body: "+err.Error(), fiber.StatusBadRequest, "auth.login.body")
	}
	if body.Username == "" || body.Pin == "" {
		return utils.ErrorResponse(c, "username and pin are required", fiber.StatusBadRequest, "auth.login.input")
	}

	user, session, err := services.Login(h.DB, body.Username, body.Pin)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return utils.ErrorResponse(c, "Invalid username or PIN", fiber.StatusUnauthorized, "auth.login.credentials")
		}
		return respondError(c, err, "auth.login")
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.Token,
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
		SameSite: "Strict",
	})

	return c.Status(fiber.StatusOK).JSON(LoginResponse{
		User:      *user,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	})
}

// Logout handles POST /api/auth/logout
// @Summary Log out
// @Description Revoke the current session token and clear the cookie
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token := c.Cookies(middleware.SessionCookie)
	if token == "" {
		token = c.Get("X-Session-Token")
	}
	if token != "" {
		if err := services.Logout(h.DB, token); err != nil {
			return respondError(c, err, "auth.logout")
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Strict",
	})

	return utils.MutationSuccessResponse(c, nil)
}

// Me handles GET /api/auth/me
// @Summary Get the logged-in user
// @Description Return the user attached to the current session
// @Tags Auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return utils.ErrorResponse(c, "No session user", fiber.StatusUnauthorized, "auth.me")
	}
	return c.Status(fiber.StatusOK).JSON(user)
}
