package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maccam68/caredesk/internal/config"
	"github.com/maccam68/caredesk/internal/services"
	"gorm.io/gorm"
)

// HealthHandler handles the liveness probe route
type HealthHandler struct {
	Cfg *config.Config
	DB  *gorm.DB
}

// Check handles GET /api/health
// @Summary Service health
// @Description Report whether the service can reach its database
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Cfg, h.DB)
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
