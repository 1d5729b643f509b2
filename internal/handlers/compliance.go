package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maccam68/caredesk/internal/models"
	"github.com/maccam68/caredesk/internal/services"
	"github.com/maccam68/caredesk/internal/utils"
	"gorm.io/gorm"
)

// ComplianceHandler handles regulatory compliance checklist routes
type ComplianceHandler struct {
	DB *gorm.DB
}

// List handles GET /api/compliance
// @Summary List compliance requirements
// @Tags Compliance
// @Produce json
// @Param category query string false "Filter by category"
// @Param status query string false "Filter by status"
// @Success 200 {array} models.ComplianceRequirement
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /compliance [get]
func (h *ComplianceHandler) List(c *fiber.Ctx) error {
	status := models.ComplianceStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		return utils.ErrorResponse(c, "unknown status filter: "+string(status), fiber.StatusBadRequest, "compliance.list")
	}

	requirements, err := services.ListRequirements(h.DB, c.Query("category"), status)
	if err != nil {
		return respondError(c, err, "compliance.list")
	}
	return c.Status(fiber.StatusOK).JSON(requirements)
}

// Get handles GET /api/compliance/:id
// @Summary Get a compliance requirement
// @Tags Compliance
// @Produce json
// @Param id path int true "Requirement ID"
// @Success 200 {object} models.ComplianceRequirement
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /compliance/{id} [get]
func (h *ComplianceHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err, "compliance.get")
	}

	requirement, err := services.GetRequirement(h.DB, id)
	if err != nil {
		return respondError(c, err, "compliance.get")
	}
	return c.Status(fiber.StatusOK).JSON(requirement)
}

// Create handles POST /api/compliance
// @Summary Create a compliance requirement
// @Tags Compliance
// @Accept json
// @Produce json
// @Param body body models.ComplianceRequirement true "Requirement with evidence and actions"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /compliance [post]
func (h *ComplianceHandler) Create(c *fiber.Ctx) error {
	var requirement models.ComplianceRequirement
	if err := c.BodyParser(&requirement); err != nil {
		return utils.ErrorResponse(c, "Invalid request body: "+err.Error(), fiber.StatusBadRequest, "compliance.create.body")
	}

	created, err := services.CreateRequirement(h.DB, requirement)
	if err != nil {
		return respondError(c, err, "compliance.create")
	}
	return utils.MutationSuccessResponse(c, created)
}

// Update handles PUT /api/compliance/:id
// @Summary Update a compliance requirement
// @Description Replace a requirement; evidence and action lists are replaced wholesale
// @Tags Compliance
// @Accept json
// @Produce json
// @Param id path int true "Requirement ID"
// @Param body body models.ComplianceRequirement true "Requirement with evidence and actions"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /compliance/{id} [put]
func (h *ComplianceHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err, "compliance.update")
	}

	var requirement models.ComplianceRequirement
	if err := c.BodyParser(&requirement); err != nil {
		return utils.ErrorResponse(c, "Invalid request body: "+err.Error(), fiber.StatusBadRequest, "compliance.update.body")
	}

	updated, err := services.UpdateRequirement(h.DB, id, requirement)
	if err != nil {
		return respondError(c, err, "compliance.update")
	}
	return utils.MutationSuccessResponse(c, updated)
}

// Delete handles DELETE /api/compliance/:id
// @Summary Delete a compliance requirement
// @Tags Compliance
// @Produce json
// @Param id path int true "Requirement ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /compliance/{id} [delete]
func (h *ComplianceHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err, "compliance.delete")
	}

	if err := services.DeleteRequirement(h.DB, id); err != nil {
		return respondError(c, err, "compliance.delete")
	}
	return utils.MutationSuccessResponse(c, nil)
}

// Stats handles GET /api/compliance/stats
// @Summary Compliance checklist statistics
// @Tags Compliance
// @Produce json
// @Success 200 {object} services.ComplianceStats
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /compliance/stats [get]
func (h *ComplianceHandler) Stats(c *fiber.Ctx) error {
	stats, err := services.GetComplianceStats(h.DB)
	if err != nil {
		return respondError(c, err, "compliance.stats")
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}
