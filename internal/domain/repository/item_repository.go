package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para Item (DIP).
// Los métodos devuelven (nil, nil) cuando el registro no existe.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	// GetForUpdate obtiene el artículo bloqueando su fila (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción (TxRunner).
	GetForUpdate(ctx context.Context, id string) (*entity.Item, error)
	// FindByNormalizedName busca por nombre normalizado (casefold + trim),
	// excluyendo opcionalmente un id (para updates).
	FindByNormalizedName(ctx context.Context, normalized, excludeID string) (*entity.Item, error)
	Update(ctx context.Context, item *entity.Item) error
	UpdateUnitCost(ctx context.Context, itemID string, cost decimal.Decimal) error
	Delete(ctx context.Context, id string) error
	ListCategories(ctx context.Context, search string) ([]string, error)
	ListUnits(ctx context.Context) ([]string, error)
}
