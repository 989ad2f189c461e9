package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/beanshub/roastery-api/internal/application/analytics"
)

// DashboardHandler expone el resumen del tablero.
type DashboardHandler struct {
	uc *analytics.UseCase
}

// NewDashboardHandler construye el handler del tablero.
func NewDashboardHandler(uc *analytics.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen del tablero
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardSummary
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	return c.JSON(h.uc.Summary())
}
