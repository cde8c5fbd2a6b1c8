package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-api/internal/domain/entity"
)

// MovementFilter filtros para el listado del libro de movimientos.
// Las fechas filtran por fecha efectiva (EffectiveDate), no por CreatedAt.
type MovementFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
	ItemID   string
	Type     string // IN, OUT, ADJUSTMENT; vacío = todos
	Limit    int
	Offset   int
}

// MovementWithItem fila de listado con el nombre del artículo desnormalizado.
type MovementWithItem struct {
	entity.Movement
	ItemName string
}

// MovementRepository define el puerto del libro de movimientos (append-only).
// No hay Update ni Delete: los movimientos son inmutables.
type MovementRepository interface {
	Append(ctx context.Context, m *entity.Movement) error
	// List devuelve la página ordenada por CreatedAt DESC y el total sin paginar.
	List(ctx context.Context, f MovementFilter) ([]*MovementWithItem, int, error)
	// SumQuantityByItem es el stock derivado: SUM(quantity), 0 sin movimientos.
	SumQuantityByItem(ctx context.Context, itemID string) (decimal.Decimal, error)
	CountByItemSince(ctx context.Context, itemID string, since time.Time) (int, error)
}
