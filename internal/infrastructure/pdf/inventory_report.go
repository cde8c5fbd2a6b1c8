// Package pdf genera el informe de inventario en PDF con Maroto v2:
// resumen del almacén, inventario completo con stock derivado y el libro de
// movimientos de los últimos 12 meses.
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appstock "github.com/tu-usuario/almacen-api/internal/application/stock"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ appstock.ReportPDFGenerator = (*InventoryReportGenerator)(nil)

// InventoryReportGenerator implementa stock.ReportPDFGenerator usando Maroto v2.
type InventoryReportGenerator struct{}

// NewInventoryReportGenerator construye el generador.
func NewInventoryReportGenerator() *InventoryReportGenerator { return &InventoryReportGenerator{} }

// GenerateInventoryPDF genera el PDF y devuelve sus bytes.
func (g *InventoryReportGenerator) GenerateInventoryPDF(_ context.Context, report *appstock.InventoryReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe de inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(totalsRow(report.Totals))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("INVENTARIO ACTUAL"))
	m.AddRows(itemsHeaderRow())
	for _, r := range itemRows(report.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(sectionTitle(fmt.Sprintf("MOVIMIENTOS %s — %s",
		report.PeriodStart.Format("02/01/2006"), report.PeriodEnd.Format("02/01/2006"))))
	m.AddRows(movementsHeaderRow())
	for _, r := range movementRows(report.Movements) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(report *appstock.InventoryReport) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("INFORME DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+report.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func totalsRow(t *repository.DashboardTotals) core.Row {
	cell := func(label, value string, size int) core.Col {
		return col.New(size).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
		)
	}
	return row.New(12).Add(
		cell("Valor total", "€ "+t.TotalStockValue.StringFixed(2), 3),
		cell("Artículos", fmt.Sprintf("%d", t.TotalItems), 3),
		cell("Bajo mínimo", fmt.Sprintf("%d", t.UnderMinCount), 3),
		cell("Stock cero", fmt.Sprintf("%d", t.ZeroStockCount), 3),
	)
}

func sectionTitle(title string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

func itemsHeaderRow() core.Row {
	return row.New(7).Add(
		tableHeader("Artículo", 4, align.Left),
		tableHeader("Categoría", 2, align.Left),
		tableHeader("Stock", 2, align.Right),
		tableHeader("Costo unit.", 2, align.Right),
		tableHeader("Valor", 2, align.Right),
	)
}

func itemRows(items []*repository.ItemWithStock) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(6).Add(
			tableCell(it.Item.Name, 4, align.Left),
			tableCell(nonEmpty(it.Item.Category, "—"), 2, align.Left),
			tableCell(it.StockQuantity.StringFixed(3)+" "+it.Item.Unit, 2, align.Right),
			tableCell("€ "+it.Item.UnitCost.StringFixed(2), 2, align.Right),
			tableCell("€ "+it.StockValue.StringFixed(2), 2, align.Right),
		))
	}
	return result
}

func movementsHeaderRow() core.Row {
	return row.New(7).Add(
		tableHeader("Fecha", 2, align.Left),
		tableHeader("Artículo", 4, align.Left),
		tableHeader("Tipo", 2, align.Center),
		tableHeader("Cantidad", 2, align.Right),
		tableHeader("Nota", 2, align.Left),
	)
}

func movementRows(movements []*repository.MovementWithItem) []core.Row {
	result := make([]core.Row, 0, len(movements))
	for _, mv := range movements {
		result = append(result, row.New(6).Add(
			tableCell(mv.EffectiveDate.Format("02/01/2006"), 2, align.Left),
			tableCell(mv.ItemName, 4, align.Left),
			tableCell(mv.Type, 2, align.Center),
			tableCell(mv.Quantity.StringFixed(3), 2, align.Right),
			tableCell(nonEmpty(mv.Note, "—"), 2, align.Left),
		))
	}
	return result
}

func tableHeader(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 1,
	}))
}

func tableCell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{Size: 8, Align: a, Top: 1}))
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
