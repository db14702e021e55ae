package handlers

import (
	"hrcentral/internal/models"
	"hrcentral/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
	logger           *zap.Logger
}

func NewDashboardHandler(dashboardService *service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// GetDashboard godoc
// @Summary Get role dashboard
// @Description Returns the KPI cards, charts and action items for a role
// @Tags dashboards
// @Produce json
// @Param role path string true "Role (CEO, CFO, COO or HR)"
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/dashboards/{role} [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	role, ok := models.ParseRole(c.Params("role"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid role",
		})
	}

	resp, err := h.dashboardService.Build(c.Context(), role)
	if err != nil {
		h.logger.Error("Dashboard build failed", zap.String("role", string(role)), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to build dashboard",
		})
	}

	return c.JSON(resp)
}
