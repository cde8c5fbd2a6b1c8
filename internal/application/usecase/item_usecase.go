package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/inventory"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// DefaultUnit unidad de medida por defecto (pieza).
const DefaultUnit = "pz"

// retentionDays ventana de movimientos que bloquea el borrado de un artículo.
const retentionDays = 365

// ItemUseCase registro de artículos: alta, edición, borrado y autocompletado.
// Nunca escribe en el libro de movimientos. El borrado corre en transacción
// con la fila bloqueada porque depende del stock derivado.
type ItemUseCase struct {
	itemRepo repository.ItemRepository
	txRunner inventory.TxRunner
	now      func() time.Time
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(itemRepo repository.ItemRepository, txRunner inventory.TxRunner) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo, txRunner: txRunner, now: time.Now}
}

// Create da de alta un artículo. ErrDuplicateName si el nombre ya existe
// (comparación case-insensitive con espacios recortados).
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*entity.Item, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.MinStock.LessThan(decimal.Zero) || in.UnitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		unit = DefaultUnit
	}

	if err := uc.checkNameUnique(ctx, name, ""); err != nil {
		return nil, err
	}

	now := uc.now()
	item := &entity.Item{
		ID:        uuid.New().String(),
		Name:      name,
		Category:  strings.TrimSpace(in.Category),
		Unit:      unit,
		Notes:     in.Notes,
		MinStock:  in.MinStock,
		UnitCost:  in.UnitCost,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update edita campos del artículo. La unicidad del nombre excluye el propio id.
func (uc *ItemUseCase) Update(ctx context.Context, id string, in dto.UpdateItemRequest) (*entity.Item, error) {
	item, err := uc.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		if domain.NormalizeName(name) != domain.NormalizeName(item.Name) {
			if err := uc.checkNameUnique(ctx, name, item.ID); err != nil {
				return nil, err
			}
		}
		item.Name = name
	}
	if in.Category != nil {
		item.Category = strings.TrimSpace(*in.Category)
	}
	if in.Unit != nil {
		unit := strings.TrimSpace(*in.Unit)
		if unit == "" {
			unit = DefaultUnit
		}
		item.Unit = unit
	}
	if in.Notes != nil {
		item.Notes = *in.Notes
	}
	if in.MinStock != nil {
		if in.MinStock.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		item.MinStock = *in.MinStock
	}
	if in.UnitCost != nil {
		if in.UnitCost.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		item.UnitCost = *in.UnitCost
	}

	item.UpdatedAt = uc.now()
	if err := uc.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete elimina un artículo si su stock derivado es cero y no tiene
// movimientos con fecha efectiva en los últimos 365 días. Corre en transacción
// con la fila bloqueada para que el stock no cambie entre la comprobación y el
// borrado.
func (uc *ItemUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		item, err := itemRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		stock, err := movRepo.SumQuantityByItem(ctx, id)
		if err != nil {
			return err
		}
		if !stock.IsZero() {
			return domain.ErrItemHasStock
		}
		since := uc.now().AddDate(0, 0, -retentionDays)
		count, err := movRepo.CountByItemSince(ctx, id, since)
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrItemHasMovements
		}
		return itemRepo.Delete(ctx, id)
	})
}

// GetByID obtiene un artículo.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return uc.itemRepo.GetByID(ctx, id)
}

// Categories valores distintos de categoría para autocompletado.
func (uc *ItemUseCase) Categories(ctx context.Context, search string) ([]string, error) {
	return uc.itemRepo.ListCategories(ctx, search)
}

// Units valores distintos de unidad de medida para autocompletado.
func (uc *ItemUseCase) Units(ctx context.Context) ([]string, error) {
	return uc.itemRepo.ListUnits(ctx)
}

func (uc *ItemUseCase) checkNameUnique(ctx context.Context, name, excludeID string) error {
	existing, err := uc.itemRepo.FindByNormalizedName(ctx, domain.NormalizeName(name), excludeID)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrDuplicateName
	}
	return nil
}
