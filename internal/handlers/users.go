package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maccam68/caredesk/internal/services"
	"github.com/maccam68/caredesk/internal/utils"
	"gorm.io/gorm"
)

// UsersHandler handles user account administration routes
type UsersHandler struct {
	DB *gorm.DB
}

// List handles GET /api/users
// @Summary List user accounts
// @Tags Users
// @Produce json
// @Success 200 {array} models.User
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /users [get]
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := services.ListUsers(h.DB)
	if err != nil {
		return respondError(c, err, "users.list")
	}
	return c.Status(fiber.StatusOK).JSON(users)
}

// Create handles POST /api/users
// @Summary Create a user account
// @Tags Users
// @Accept json
// @Produce json
// @Param body body services.UserInput true "Account fields"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /users [post]
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var input services.UserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid request body: "+err.Error(), fiber.StatusBadRequest, "users.create.body")
	}

	user, err := services.CreateUser(h.DB, input)
	if err != nil {
		return respondError(c, err, "users.create")
	}
	return utils.MutationSuccessResponse(c, user)
}

// Update handles PUT /api/users/:id
// @Summary Update a user account
// @Tags Users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param body body services.UserInput true "Fields to change"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id} [put]
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err, "users.update")
	}

	var input services.UserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, "Invalid request body: "+err.Error(), fiber.StatusBadRequest, "users.update.body")
	}

	user, err := services.UpdateUser(h.DB, id, input)
	if err != nil {
		return respondError(c, err, "users.update")
	}
	return utils.MutationSuccessResponse(c, user)
}

// Delete handles DELETE /api/users/:id
// @Summary Delete a user account
// @Tags Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /users/{id} [delete]
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err, "users.delete")
	}

	if err := services.DeleteUser(h.DB, id); err != nil {
		return respondError(c, err, "users.delete")
	}
	return utils.MutationSuccessResponse(c, nil)
}
