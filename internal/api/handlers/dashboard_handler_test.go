package handlers

import (
	"net/http/httptest"
	"testing"

	"hrcentral/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDashboardEndpointRejectsUnknownRole(t *testing.T) {
	dashboardService := service.NewDashboardService(nil, nil, nil, nil, zap.NewNop())
	handler := NewDashboardHandler(dashboardService, zap.NewNop())

	app := fiber.New()
	app.Get("/dashboards/:role", handler.GetDashboard)

	for _, role := range []string{"INTERN", "admin", "ceo2"} {
		resp, err := app.Test(httptest.NewRequest("GET", "/dashboards/"+role, nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "role %q", role)
		resp.Body.Close()
	}
}
