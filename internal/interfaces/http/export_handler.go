package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	appstock "github.com/tu-usuario/almacen-api/internal/application/stock"
)

// ExportHandler genera el informe PDF del inventario.
type ExportHandler struct {
	export *appstock.ExportUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(export *appstock.ExportUseCase) *ExportHandler {
	return &ExportHandler{export: export}
}

// InventoryPDF godoc
// @Summary      Exportar inventario y movimientos del último año a PDF
// @Tags         export
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/export/inventory.pdf [get]
func (h *ExportHandler) InventoryPDF(c *fiber.Ctx) error {
	data, err := h.export.InventoryPDF(c.Context())
	if err != nil {
		return writeDomainError(c, err)
	}
	filename := fmt.Sprintf("inventario_%s.pdf", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
