package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/mayondo-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve el resumen del negocio.
// GET /api/dashboard/summary
//
// Respuesta: DashboardSummaryDTO (total_sales, total_stock_items, out_of_stock_entries,
// utilidad histórica y del mes en curso, date_label).
// El resumen sale de caché mientras ningún libro cambie.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
