package stock_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-api/internal/application/stock"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// fakeStockRepo captura la consulta recibida y devuelve datos fijos.
type fakeStockRepo struct {
	lastQuery repository.StockQuery
}

var _ repository.StockRepository = (*fakeStockRepo)(nil)

func (r *fakeStockRepo) ListWithStock(_ context.Context, q repository.StockQuery) ([]*repository.ItemWithStock, error) {
	r.lastQuery = q
	return []*repository.ItemWithStock{}, nil
}

func (r *fakeStockRepo) DashboardTotals(_ context.Context) (*repository.DashboardTotals, error) {
	return &repository.DashboardTotals{TotalItems: 3}, nil
}

func (r *fakeStockRepo) ComputeStock(_ context.Context, _ string) (decimal.Decimal, error) {
	return decimal.NewFromInt(7), nil
}

func TestListWithStock_ValoresPorDefecto(t *testing.T) {
	repo := &fakeStockRepo{}
	uc := stock.NewQueryUseCase(repo)

	_, err := uc.ListWithStock(context.Background(), repository.StockQuery{})
	require.NoError(t, err)
	assert.Equal(t, repository.SortByName, repo.lastQuery.SortBy)
	assert.Equal(t, "asc", repo.lastQuery.SortOrder)
}

func TestListWithStock_OrdenacionValida(t *testing.T) {
	repo := &fakeStockRepo{}
	uc := stock.NewQueryUseCase(repo)

	claves := []string{
		repository.SortByName,
		repository.SortByCategory,
		repository.SortByStockQuantity,
		repository.SortByIsUnderMinStock,
	}
	for _, k := range claves {
		_, err := uc.ListWithStock(context.Background(), repository.StockQuery{SortBy: k, SortOrder: "desc"})
		assert.NoError(t, err, k)
	}
}

func TestListWithStock_OrdenacionInvalida(t *testing.T) {
	repo := &fakeStockRepo{}
	uc := stock.NewQueryUseCase(repo)

	_, err := uc.ListWithStock(context.Background(), repository.StockQuery{SortBy: "unit_cost"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ListWithStock(context.Background(), repository.StockQuery{SortOrder: "sideways"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
