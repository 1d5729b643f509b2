package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maccam68/caredesk/internal/models"
	"github.com/maccam68/caredesk/internal/services"
	"github.com/maccam68/caredesk/internal/utils"
	"gorm.io/gorm"
)

// MFHHandler handles missing-from-home report routes
type MFHHandler struct {
	DB *gorm.DB
}

// List handles GET /api/mfh
// @Summary List missing-from-home reports
// @Tags MFH
// @Produce json
// @Param status query string false "Filter by status (active or resolved)"
// @Success 200 {array} models.MFHReport
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /mfh [get]
func (h *MFHHandler) List(c *fiber.Ctx) error {
	status := models.MFHStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		return utils.ErrorResponse(c, "unknown status filter: "+string(status), fiber.StatusBadRequest, "mfh.list")
	}

	reports, err := services.ListMFHReports(h.DB, status)
	if err != nil {
		return respondError(c, err, "mfh.list")
	}
	return c.Status(fiber.StatusOK).JSON(reports)
}

// Get handles GET /api/mfh/:id
// @Summary Get a missing-from-home report
// @Tags MFH
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} models.MFHReport
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /mfh/{id} [get]
func (h *MFHHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err, "mfh.get")
	}

	report, err := services.GetMFHReport(h.DB, id)
	if err != nil {
		return respondError(c, err, "mfh.get")
	}
	return c.Status(fiber.StatusOK).JSON(report)
}

// Create handles POST /api/mfh
// @Summary Open a missing-from-home report
// @Description Create a report; new reports always start active
// @Tags MFH
// @Accept json
// @Produce json
// @Param body body models.MFHReport true "Report fields"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /mfh [post]
func (h *MFHHandler) Create(c *fiber.Ctx) error {
	var report models.MFHReport
	if err := c.BodyParser(&report); err != nil {
		return utils.ErrorResponse(c, "Invalid request body: "+err.Error(), fiber.StatusBadRequest, "mfh.create.body")
	}

	created, err := services.CreateMFHReport(h.DB, report)
	if err != nil {
		return respondError(c, err, "mfh.create")
	}
	return utils.MutationSuccessResponse(c, created)
}

// Update handles PUT /api/mfh/:id
// @Summary Update a missing-from-home report
// @Description Replace a report; resolved reports cannot reopen
// @Tags MFH
// @Accept json
// @Produce json
// @Param id path int true "Report ID"
// @Param body body models.MFHReport true "Report fields"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /mfh/{id} [put]
func (h *MFHHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err, "mfh.update")
	}

	var report models.MFHReport
	if err := c.BodyParser(&report); err != nil {
		return utils.ErrorResponse(c, "Invalid request body: "+err.Error(), fiber.StatusBadRequest, "mfh.update.body")
	}

	updated, err := services.UpdateMFHReport(h.DB, id, report)
	if err != nil {
		return respondError(c, err, "mfh.update")
	}
	return utils.MutationSuccessResponse(c, updated)
}

// MarkReturned handles POST /api/mfh/:id/return
// @Summary Resolve a report with return details
// @Description Record the return and move the report to resolved
// @Tags MFH
// @Accept json
// @Produce json
// @Param id path int true "Report ID"
// @Param body body services.ReturnDetails true "Return details"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /mfh/{id}/return [post]
func (h *MFHHandler) MarkReturned(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err, "mfh.return")
	}

	var details services.ReturnDetails
	if err := c.BodyParser(&details); err != nil {
		return utils.ErrorResponse(c, "Invalid request body: "+err.Error(), fiber.StatusBadRequest, "mfh.return.body")
	}

	report, err := services.MarkReturned(h.DB, id, details)
	if err != nil {
		return respondError(c, err, "mfh.return")
	}
	return utils.MutationSuccessResponse(c, report)
}

// Delete handles DELETE /api/mfh/:id
// @Summary Delete a missing-from-home report
// @Tags MFH
// @Produce json
// @Param id path int true "Report ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /mfh/{id} [delete]
func (h *MFHHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err, "mfh.delete")
	}

	if err := services.DeleteMFHReport(h.DB, id); err != nil {
		return respondError(c, err, "mfh.delete")
	}
	return utils.MutationSuccessResponse(c, nil)
}

// Stats handles GET /api/mfh/stats
// @Summary Missing-from-home statistics
// @Tags MFH
// @Produce json
// @Success 200 {object} services.MFHStats
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /mfh/stats [get]
func (h *MFHHandler) Stats(c *fiber.Ctx) error {
	stats, err := services.GetMFHStats(h.DB)
	if err != nil {
		return respondError(c, err, "mfh.stats")
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}
