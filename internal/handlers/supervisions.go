package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maccam68/caredesk/internal/models"
	"github.com/maccam68/caredesk/internal/services"
	"github.com/maccam68/caredesk/internal/utils"
	"gorm.io/gorm"
)

// SupervisionsHandler handles supervision scheduling routes
type SupervisionsHandler struct {
	DB *gorm.DB
}

// List handles GET /api/supervisions
// @Summary List supervision sessions
// @Tags Supervisions
// @Produce json
// @Param staffId query int false "Filter by staff member"
// @Param status query string false "Filter by status"
// @Success 200 {array} models.Supervision
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /supervisions [get]
func (h *SupervisionsHandler) List(c *fiber.Ctx) error {
	staffID, err := parseUintQuery(c, "staffId")
	if err != nil {
		return respondError(c, err, "supervisions.list")
	}
	status := models.SupervisionStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		return utils.ErrorResponse(c, "unknown status filter: "+string(status), fiber.StatusBadRequest, "supervisions.list")
	}

	sessions, err := services.ListSupervisions(h.DB, staffID, status)
	if err != nil {
		return respondError(c, err, "supervisions.list")
	}
	return c.Status(fiber.StatusOK).JSON(sessions)
}

// Get handles GET /api/supervisions/:id
// @Summary Get a supervision session
// @Tags Supervisions
// @Produce json
// @Param id path int true "Supervision ID"
// @Success 200 {object} models.Supervision
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /supervisions/{id} [get]
func (h *SupervisionsHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err, "supervisions.get")
	}

	session, err := services.GetSupervision(h.DB, id)
	if err != nil {
		return respondError(c, err, "supervisions.get")
	}
	return c.Status(fiber.StatusOK).JSON(session)
}

// Create handles POST /api/supervisions
// @Summary Schedule a supervision session
// @Description Create a session; new sessions always start scheduled
// @Tags Supervisions
// @Accept json
// @Produce json
// @Param body body models.Supervision true "Session fields"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /supervisions [post]
func (h *SupervisionsHandler) Create(c *fiber.Ctx) error {
	var session models.Supervision
	if err := c.BodyParser(&session); err != nil {
		return utils.ErrorResponse(c, "Invalid request body: "+err.Error(), fiber.StatusBadRequest, "supervisions.create.body")
	}

	created, err := services.CreateSupervision(h.DB, session)
	if err != nil {
		return respondError(c, err, "supervisions.create")
	}
	return utils.MutationSuccessResponse(c, created)
}

// Update handles PUT /api/supervisions/:id
// @Summary Update a supervision session
// @Description Replace a session; completed and cancelled sessions are frozen
// @Tags Supervisions
// @Accept json
// @Produce json
// @Param id path int true "Supervision ID"
// @Param body body models.Supervision true "Session fields"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /supervisions/{id} [put]
func (h *SupervisionsHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err, "supervisions.update")
	}

	var session models.Supervision
	if err := c.BodyParser(&session); err != nil {
		return utils.ErrorResponse(c, "Invalid request body: "+err.Error(), fiber.StatusBadRequest, "supervisions.update.body")
	}

	updated, err := services.UpdateSupervision(h.DB, id, session)
	if err != nil {
		return respondError(c, err, "supervisions.update")
	}
	return utils.MutationSuccessResponse(c, updated)
}

// Delete handles DELETE /api/supervisions/:id
// @Summary Delete a supervision session
// @Tags Supervisions
// @Produce json
// @Param id path int true "Supervision ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /supervisions/{id} [delete]
func (h *SupervisionsHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err, "supervisions.delete")
	}

	if err := services.DeleteSupervision(h.DB, id); err != nil {
		return respondError(c, err, "supervisions.delete")
	}
	return utils.MutationSuccessResponse(c, nil)
}

// Stats handles GET /api/supervisions/stats
// @Summary Supervision schedule statistics
// @Tags Supervisions
// @Produce json
// @Success 200 {object} services.SupervisionStats
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /supervisions/stats [get]
func (h *SupervisionsHandler) Stats(c *fiber.Ctx) error {
	stats, err := services.GetSupervisionStats(h.DB)
	if err != nil {
		return respondError(c, err, "supervisions.stats")
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}
