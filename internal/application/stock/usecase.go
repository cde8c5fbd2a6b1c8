package stock

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// QueryUseCase lado de lectura del agregador de stock. No toma bloqueos:
// cada consulta observa una instantánea consistente por sí misma, pero no se
// serializa contra escrituras en vuelo.
type QueryUseCase struct {
	stockRepo repository.StockRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(stockRepo repository.StockRepository) *QueryUseCase {
	return &QueryUseCase{stockRepo: stockRepo}
}

// ListWithStock lista artículos con stock derivado, aplicando valores por
// defecto y validando la clave de ordenación.
func (uc *QueryUseCase) ListWithStock(ctx context.Context, q repository.StockQuery) ([]*repository.ItemWithStock, error) {
	if q.SortBy == "" {
		q.SortBy = repository.SortByName
	}
	switch q.SortBy {
	case repository.SortByName, repository.SortByCategory,
		repository.SortByStockQuantity, repository.SortByIsUnderMinStock:
	default:
		return nil, domain.ErrInvalidInput
	}
	switch q.SortOrder {
	case "":
		q.SortOrder = "asc"
	case "asc", "desc":
	default:
		return nil, domain.ErrInvalidInput
	}
	return uc.stockRepo.ListWithStock(ctx, q)
}

// DashboardTotals agregados globales: valor total, artículos bajo mínimo,
// total de artículos y artículos a stock cero.
func (uc *QueryUseCase) DashboardTotals(ctx context.Context) (*repository.DashboardTotals, error) {
	return uc.stockRepo.DashboardTotals(ctx)
}

// ComputeStock stock derivado de un artículo (0 sin movimientos).
func (uc *QueryUseCase) ComputeStock(ctx context.Context, itemID string) (decimal.Decimal, error) {
	return uc.stockRepo.ComputeStock(ctx, itemID)
}
