package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maccam68/caredesk/internal/models"
	"github.com/maccam68/caredesk/internal/services"
	"github.com/maccam68/caredesk/internal/utils"
	"gorm.io/gorm"
)

// StaffHandler handles staff record routes
type StaffHandler struct {
	DB *gorm.DB
}

// List handles GET /api/staff
// @Summary List staff members
// @Description List all staff records with qualifications, employment history and references
// @Tags Staff
// @Produce json
// @Success 200 {array} models.StaffMember
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /staff [get]
func (h *StaffHandler) List(c *fiber.Ctx) error {
	staff, err := services.ListStaff(h.DB)
	if err != nil {
		return respondError(c, err, "staff.list")
	}
	return c.Status(fiber.StatusOK).JSON(staff)
}

// Get handles GET /api/staff/:id
// @Summary Get a staff member
// @Tags Staff
// @Produce json
// @Param id path int true "Staff ID"
// @Success 200 {object} models.StaffMember
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /staff/{id} [get]
func (h *StaffHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err, "staff.get")
	}

	member, err := services.GetStaff(h.DB, id)
	if err != nil {
		return respondError(c, err, "staff.get")
	}
	return c.Status(fiber.StatusOK).JSON(member)
}

// Create handles POST /api/staff
// @Summary Create a staff member
// @Description Create a staff record; new members always start active
// @Tags Staff
// @Accept json
// @Produce json
// @Param body body models.StaffMember true "Staff record"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /staff [post]
func (h *StaffHandler) Create(c *fiber.Ctx) error {
	var member models.StaffMember
	if err := c.BodyParser(&member); err != nil {
		return utils.ErrorResponse(c, "Invalid request body: "+err.Error(), fiber.StatusBadRequest, "staff.create.body")
	}

	created, err := services.CreateStaff(h.DB, member)
	if err != nil {
		return respondError(c, err, "staff.create")
	}
	return utils.MutationSuccessResponse(c, created)
}

// Update handles PUT /api/staff/:id
// @Summary Update a staff member
// @Description Replace a staff record; child collections are replaced wholesale
// @Tags Staff
// @Accept json
// @Produce json
// @Param id path int true "Staff ID"
// @Param body body models.StaffMember true "Staff record"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /staff/{id} [put]
func (h *StaffHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err, "staff.update")
	}

	var member models.StaffMember
	if err := c.BodyParser(&member); err != nil {
		return utils.ErrorResponse(c, "Invalid request body: "+err.Error(), fiber.StatusBadRequest, "staff.update.body")
	}

	updated, err := services.UpdateStaff(h.DB, id, member)
	if err != nil {
		return respondError(c, err, "staff.update")
	}
	return utils.MutationSuccessResponse(c, updated)
}

// ToggleStatus handles POST /api/staff/:id/toggle-status
// @Summary Toggle a staff member between active and inactive
// @Tags Staff
// @Produce json
// @Param id path int true "Staff ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /staff/{id}/toggle-status [post]
func (h *StaffHandler) ToggleStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err, "staff.toggle")
	}

	member, err := services.ToggleStaffStatus(h.DB, id)
	if err != nil {
		return respondError(c, err, "staff.toggle")
	}
	return utils.MutationSuccessResponse(c, member)
}

// Delete handles DELETE /api/staff/:id
// @Summary Delete a staff member
// @Description Remove a staff record and its child collections
// @Tags Staff
// @Produce json
// @Param id path int true "Staff ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /staff/{id} [delete]
func (h *StaffHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err, "staff.delete")
	}

	if err := services.DeleteStaff(h.DB, id); err != nil {
		return respondError(c, err, "staff.delete")
	}
	return utils.MutationSuccessResponse(c, nil)
}

// Stats handles GET /api/staff/stats
// @Summary Staff headcount statistics
// @Tags Staff
// @Produce json
// @Success 200 {object} services.StaffStats
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /staff/stats [get]
func (h *StaffHandler) Stats(c *fiber.Ctx) error {
	stats, err := services.GetStaffStats(h.DB)
	if err != nil {
		return respondError(c, err, "staff.stats")
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}
