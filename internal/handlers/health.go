package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/personafol/personafolio/internal/cms"
	"github.com/personafol/personafolio/internal/services"
	"github.com/personafol/personafolio/internal/utils"
)

// HealthHandler serves the liveness/readiness route.
type HealthHandler struct {
	CMS *cms.Accessor
}

// Check handles GET /health
// @Summary Report service health
// @Description Check database connectivity and upload directory availability
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	client, err := h.CMS.Client(c.UserContext())
	if err != nil {
		return utils.ErrorResponse(c, "Service unavailable", fiber.StatusServiceUnavailable, "cms.init")
	}

	result := services.HealthCheck(client.Config, client.DB)
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
