package stock

import (
	"context"
	"time"

	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// exportMovementDays ventana de movimientos incluida en el informe: 12 meses.
const exportMovementDays = 365

// exportMovementLimit tope alto para volcar el libro completo del período.
const exportMovementLimit = 10000

// InventoryReport datos del informe de inventario para exportación.
type InventoryReport struct {
	GeneratedAt time.Time
	PeriodStart time.Time
	PeriodEnd   time.Time
	Totals      *repository.DashboardTotals
	Items       []*repository.ItemWithStock
	Movements   []*repository.MovementWithItem
}

// ReportPDFGenerator puerto del renderizador del informe.
type ReportPDFGenerator interface {
	GenerateInventoryPDF(ctx context.Context, report *InventoryReport) ([]byte, error)
}

// ExportUseCase arma el informe (inventario completo + movimientos de los
// últimos 12 meses) y lo entrega al generador PDF.
type ExportUseCase struct {
	stockRepo repository.StockRepository
	movRepo   repository.MovementRepository
	pdfGen    ReportPDFGenerator
	now       func() time.Time
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(stockRepo repository.StockRepository, movRepo repository.MovementRepository, pdfGen ReportPDFGenerator) *ExportUseCase {
	return &ExportUseCase{stockRepo: stockRepo, movRepo: movRepo, pdfGen: pdfGen, now: time.Now}
}

// InventoryPDF genera el informe en PDF y devuelve sus bytes.
func (uc *ExportUseCase) InventoryPDF(ctx context.Context) ([]byte, error) {
	now := uc.now()
	periodStart := now.AddDate(0, 0, -exportMovementDays)

	items, err := uc.stockRepo.ListWithStock(ctx, repository.StockQuery{
		SortBy:    repository.SortByName,
		SortOrder: "asc",
	})
	if err != nil {
		return nil, err
	}
	totals, err := uc.stockRepo.DashboardTotals(ctx)
	if err != nil {
		return nil, err
	}
	movements, _, err := uc.movRepo.List(ctx, repository.MovementFilter{
		FromDate: &periodStart,
		ToDate:   &now,
		Limit:    exportMovementLimit,
	})
	if err != nil {
		return nil, err
	}

	return uc.pdfGen.GenerateInventoryPDF(ctx, &InventoryReport{
		GeneratedAt: now,
		PeriodStart: periodStart,
		PeriodEnd:   now,
		Totals:      totals,
		Items:       items,
		Movements:   movements,
	})
}
