package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-api/internal/domain/entity"
)

// Claves de ordenación admitidas en ListWithStock.
const (
	SortByName            = "name"
	SortByCategory        = "category"
	SortByStockQuantity   = "stock_quantity"
	SortByIsUnderMinStock = "is_under_min_stock"
)

// StockQuery filtros y ordenación para el listado de artículos con stock.
type StockQuery struct {
	Search       string // subcadena del nombre, case-insensitive
	Category     string // igualdad exacta
	UnderMinOnly bool
	SortBy       string
	SortOrder    string // asc, desc
}

// ItemWithStock artículo con sus campos derivados del libro.
type ItemWithStock struct {
	Item            entity.Item
	StockQuantity   decimal.Decimal
	StockValue      decimal.Decimal // StockQuantity × UnitCost
	IsUnderMinStock bool
	LastMovementAt  *time.Time
}

// DashboardTotals agregados globales del almacén.
type DashboardTotals struct {
	TotalStockValue decimal.Decimal
	UnderMinCount   int
	TotalItems      int
	ZeroStockCount  int
}

// StockRepository puerto de lectura del agregador de stock.
// Todas las consultas derivan el stock del libro en una sola pasada
// (join + agregación), nunca artículo a artículo.
type StockRepository interface {
	ListWithStock(ctx context.Context, q StockQuery) ([]*ItemWithStock, error)
	DashboardTotals(ctx context.Context) (*DashboardTotals, error)
	ComputeStock(ctx context.Context, itemID string) (decimal.Decimal, error)
}
