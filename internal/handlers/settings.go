package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/maccam68/caredesk/internal/models"
	"github.com/maccam68/caredesk/internal/services"
	"github.com/maccam68/caredesk/internal/utils"
	"gorm.io/gorm"
)

// SettingsHandler handles application settings routes
type SettingsHandler struct {
	DB *gorm.DB
}

// Get handles GET /api/settings
// @Summary Get application settings
// @Description Return the stored settings merged over the defaults
// @Tags Settings
// @Produce json
// @Success 200 {object} models.Settings
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /settings [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	settings, err := services.GetSettings(h.DB)
	if err != nil {
		return respondError(c, err, "settings.get")
	}
	return c.Status(fiber.StatusOK).JSON(settings)
}

// Save handles PUT /api/settings
// @Summary Save application settings
// @Description Overwrite the settings document wholesale
// @Tags Settings
// @Accept json
// @Produce json
// @Param body body models.Settings true "Settings document"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /settings [put]
func (h *SettingsHandler) Save(c *fiber.Ctx) error {
	var settings models.Settings
	if err := c.BodyParser(&settings); err != nil {
		return utils.ErrorResponse(c, "Invalid request body: "+err.Error(), fiber.StatusBadRequest, "settings.save.body")
	}

	if err := services.SaveSettings(h.DB, settings); err != nil {
		return respondError(c, err, "settings.save")
	}
	return utils.MutationSuccessResponse(c, settings)
}

// Export handles GET /api/settings/export
// @Summary Export settings as a backup file
// @Description Download the settings document as a dated JSON attachment
// @Tags Settings
// @Produce json
// @Success 200 {object} models.Settings
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /settings/export [get]
func (h *SettingsHandler) Export(c *fiber.Ctx) error {
	settings, err := services.GetSettings(h.DB)
	if err != nil {
		return respondError(c, err, "settings.export")
	}

	filename := "settings-backup-" + time.Now().Format("2006-01-02") + ".json"
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Status(fiber.StatusOK).JSON(settings)
}

// Import handles POST /api/settings/import
// @Summary Import a settings backup
// @Description Merge an exported document onto the defaults and persist it
// @Tags Settings
// @Accept json
// @Produce json
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /settings/import [post]
func (h *SettingsHandler) Import(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return utils.ErrorResponse(c, "empty request body", fiber.StatusBadRequest, "settings.import.body")
	}

	settings, err := services.ImportSettings(h.DB, body)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid settings document: "+err.Error(), fiber.StatusBadRequest, "settings.import")
	}
	return utils.MutationSuccessResponse(c, settings)
}
