package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/maccam68/caredesk/internal/models"
	"github.com/maccam68/caredesk/internal/services"
	"github.com/maccam68/caredesk/internal/types"
	"github.com/maccam68/caredesk/internal/utils"
	"gorm.io/gorm"
)

// TrainingHandler handles training module and allocation routes
type TrainingHandler struct {
	DB *gorm.DB
}

// ListModules handles GET /api/training/modules
// @Summary List training modules
// @Description List modules with completion counts derived from allocations
// @Tags Training
// @Produce json
// @Success 200 {array} services.ModuleView
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /training/modules [get]
func (h *TrainingHandler) ListModules(c *fiber.Ctx) error {
	modules, err := services.ListModules(h.DB)
	if err != nil {
		return respondError(c, err, "training.modules.list")
	}
	return c.Status(fiber.StatusOK).JSON(modules)
}

// GetModule handles GET /api/training/modules/:id
// @Summary Get a training module
// @Tags Training
// @Produce json
// @Param id path int true "Module ID"
// @Success 200 {object} services.ModuleView
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /training/modules/{id} [get]
func (h *TrainingHandler) GetModule(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err, "training.modules.get")
	}

	module, err := services.GetModule(h.DB, id)
	if err != nil {
		return respondError(c, err, "training.modules.get")
	}
	return c.Status(fiber.StatusOK).JSON(module)
}

// CreateModule handles POST /api/training/modules
// @Summary Create a training module
// @Tags Training
// @Accept json
// @Produce json
// @Param body body models.TrainingModule true "Module fields"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /training/modules [post]
func (h *TrainingHandler) CreateModule(c *fiber.Ctx) error {
	var module models.TrainingModule
	if err := c.BodyParser(&module); err != nil {
		return utils.ErrorResponse(c, "Invalid request body: "+err.Error(), fiber.StatusBadRequest, "training.modules.create.body")
	}

	created, err := services.CreateModule(h.DB, module)
	if err != nil {
		return respondError(c, err, "training.modules.create")
	}
	return utils.MutationSuccessResponse(c, created)
}

// UpdateModule handles PUT /api/training/modules/:id
// @Summary Update a training module
// @Tags Training
// @Accept json
// @Produce json
// @Param id path int true "Module ID"
// @Param body body models.TrainingModule true "Module fields"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /training/modules/{id} [put]
func (h *TrainingHandler) UpdateModule(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err, "training.modules.update")
	}

	var module models.TrainingModule
	if err := c.BodyParser(&module); err != nil {
		return utils.ErrorResponse(c, "Invalid request body: "+err.Error(), fiber.StatusBadRequest, "training.modules.update.body")
	}

	updated, err := services.UpdateModule(h.DB, id, module)
	if err != nil {
		return respondError(c, err, "training.modules.update")
	}
	return utils.MutationSuccessResponse(c, updated)
}

// DeleteModule handles DELETE /api/training/modules/:id
// @Summary Delete a training module and its allocations
// @Tags Training
// @Produce json
// @Param id path int true "Module ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /training/modules/{id} [delete]
func (h *TrainingHandler) DeleteModule(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err, "training.modules.delete")
	}

	if err := services.DeleteModule(h.DB, id); err != nil {
		return respondError(c, err, "training.modules.delete")
	}
	return utils.MutationSuccessResponse(c, nil)
}

// ListAllocations handles GET /api/training/allocations
// @Summary List training allocations
// @Tags Training
// @Produce json
// @Param moduleId query int false "Filter by module"
// @Param staffId query int false "Filter by staff member"
// @Success 200 {array} models.TrainingAllocation
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /training/allocations [get]
func (h *TrainingHandler) ListAllocations(c *fiber.Ctx) error {
	moduleID, err := parseUintQuery(c, "moduleId")
	if err != nil {
		return respondError(c, err, "training.allocations.list")
	}
	staffID, err := parseUintQuery(c, "staffId")
	if err != nil {
		return respondError(c, err, "training.allocations.list")
	}

	allocations, err := services.ListAllocations(h.DB, moduleID, staffID)
	if err != nil {
		return respondError(c, err, "training.allocations.list")
	}
	return c.Status(fiber.StatusOK).JSON(allocations)
}

// AllocationInput is one allocation as sent by form-driven clients, which
// deliver ids as numbers or strings interchangeably.
type AllocationInput struct {
	StaffID        types.FlexUint          `json:"staffId"`
	ModuleID       types.FlexUint          `json:"moduleId"`
	Status         models.AllocationStatus `json:"status"`
	StartDate      string                  `json:"startDate"`
	CompletionDate string                  `json:"completionDate"`
}

// SaveAllocation handles POST /api/training/allocations
// @Summary Save training allocations
// @Description Upsert by (staffId, moduleId) pair; accepts one allocation or an array. Status moves forward only
// @Tags Training
// @Accept json
// @Produce json
// @Param body body AllocationInput true "Allocation, or an array of allocations"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 409 {object} utils.ErrorResponseStruct
// @Router /training/allocations [post]
func (h *TrainingHandler) SaveAllocation(c *fiber.Ctx) error {
	var inputs types.FlexList[AllocationInput]
	if err := json.Unmarshal(c.Body(), &inputs); err != nil {
		return utils.ErrorResponse(c, "Invalid request body: "+err.Error(), fiber.StatusBadRequest, "training.allocations.save.body")
	}
	if len(inputs) == 0 {
		return utils.ErrorResponse(c, "no allocations in request body", fiber.StatusBadRequest, "training.allocations.save.body")
	}

	saved := make([]models.TrainingAllocation, 0, len(inputs))
	for _, input := range inputs {
		status := input.Status
		if status == "" {
			status = models.AllocationNotStarted
		}
		result, err := services.SaveAllocation(h.DB, models.TrainingAllocation{
			StaffID:        input.StaffID.Uint(),
			ModuleID:       input.ModuleID.Uint(),
			Status:         status,
			StartDate:      input.StartDate,
			CompletionDate: input.CompletionDate,
		})
		if err != nil {
			return respondError(c, err, "training.allocations.save")
		}
		saved = append(saved, *result)
	}

	if len(saved) == 1 {
		return utils.MutationSuccessResponse(c, saved[0])
	}
	return utils.MutationSuccessResponse(c, saved)
}

// DeleteAllocation handles DELETE /api/training/allocations/:staffId/:moduleId
// @Summary Delete a training allocation
// @Tags Training
// @Produce json
// @Param staffId path int true "Staff ID"
// @Param moduleId path int true "Module ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /training/allocations/{staffId}/{moduleId} [delete]
func (h *TrainingHandler) DeleteAllocation(c *fiber.Ctx) error {
	staffID, err := parseIDParam(c, "staffId")
	if err != nil {
		return respondError(c, err, "training.allocations.delete")
	}
	moduleID, err := parseIDParam(c, "moduleId")
	if err != nil {
		return respondError(c, err, "training.allocations.delete")
	}

	if err := services.DeleteAllocation(h.DB, staffID, moduleID); err != nil {
		return respondError(c, err, "training.allocations.delete")
	}
	return utils.MutationSuccessResponse(c, nil)
}

// Stats handles GET /api/training/stats
// @Summary Training compliance statistics
// @Tags Training
// @Produce json
// @Success 200 {object} services.TrainingStats
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /training/stats [get]
func (h *TrainingHandler) Stats(c *fiber.Ctx) error {
	stats, err := services.GetTrainingStats(h.DB)
	if err != nil {
		return respondError(c, err, "training.stats")
	}
	return c.Status(fiber.StatusOK).JSON(stats)
}
