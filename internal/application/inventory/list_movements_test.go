package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/almacen-api/internal/application/inventory"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// fakeMovLister captura el filtro recibido.
type fakeMovLister struct {
	lastFilter repository.MovementFilter
}

var _ repository.MovementRepository = (*fakeMovLister)(nil)

func (r *fakeMovLister) Append(_ context.Context, _ *entity.Movement) error { return nil }

func (r *fakeMovLister) List(_ context.Context, f repository.MovementFilter) ([]*repository.MovementWithItem, int, error) {
	r.lastFilter = f
	return []*repository.MovementWithItem{}, 0, nil
}

func (r *fakeMovLister) SumQuantityByItem(_ context.Context, _ string) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *fakeMovLister) CountByItemSince(_ context.Context, _ string, _ time.Time) (int, error) {
	return 0, nil
}

func TestListMovements_RangoPorDefecto(t *testing.T) {
	repo := &fakeMovLister{}
	uc := inventory.NewListMovementsUseCase(repo)
	uc.SetNow(func() time.Time { return testNow })

	_, _, err := uc.List(context.Background(), repository.MovementFilter{})
	require.NoError(t, err)

	today := testNow.Truncate(24 * time.Hour)
	require.NotNil(t, repo.lastFilter.FromDate)
	require.NotNil(t, repo.lastFilter.ToDate)
	assert.Equal(t, today.AddDate(0, 0, -inventory.DefaultListDays), *repo.lastFilter.FromDate)
	assert.Equal(t, today, *repo.lastFilter.ToDate)
	assert.Equal(t, 100, repo.lastFilter.Limit)
}

func TestListMovements_RangoExplicitoSeRespeta(t *testing.T) {
	repo := &fakeMovLister{}
	uc := inventory.NewListMovementsUseCase(repo)
	uc.SetNow(func() time.Time { return testNow })

	from := testNow.AddDate(0, -6, 0)
	to := testNow.AddDate(0, -3, 0)
	_, _, err := uc.List(context.Background(), repository.MovementFilter{
		FromDate: &from,
		ToDate:   &to,
		Limit:    25,
	})
	require.NoError(t, err)
	assert.Equal(t, from, *repo.lastFilter.FromDate)
	assert.Equal(t, to, *repo.lastFilter.ToDate)
	assert.Equal(t, 25, repo.lastFilter.Limit)
}

func TestListMovements_TipoInvalido(t *testing.T) {
	repo := &fakeMovLister{}
	uc := inventory.NewListMovementsUseCase(repo)

	_, _, err := uc.List(context.Background(), repository.MovementFilter{Type: "TRANSFER"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
