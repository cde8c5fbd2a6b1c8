package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/almacen-api/internal/application/dto"
	appstock "github.com/tu-usuario/almacen-api/internal/application/stock"
)

// DashboardHandler expone los agregados de stock para el panel.
type DashboardHandler struct {
	stock *appstock.QueryUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(stock *appstock.QueryUseCase) *DashboardHandler {
	return &DashboardHandler{stock: stock}
}

// Stats godoc
// @Summary      Totales del panel (valor de stock, bajo mínimo, sin stock)
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	totals, err := h.stock.DashboardTotals(c.Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(dto.DashboardStatsResponse{
		TotalStockValue: totals.TotalStockValue,
		UnderMinCount:   totals.UnderMinCount,
		TotalItems:      totals.TotalItems,
		ZeroStockCount:  totals.ZeroStockCount,
	})
}
