package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maccam68/caredesk/internal/services"
	"gorm.io/gorm"
)

// DashboardHandler handles the landing-page summary route
type DashboardHandler struct {
	DB *gorm.DB
}

// Summary handles GET /api/dashboard
// @Summary Dashboard snapshot
// @Description Headline figures plus upcoming supervisions and recent reports
// @Tags Dashboard
// @Produce json
// @Success 200 {object} services.DashboardSummary
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	summary, err := services.GetDashboardSummary(h.DB)
	if err != nil {
		return respondError(c, err, "dashboard.summary")
	}
	return c.Status(fiber.StatusOK).JSON(summary)
}
