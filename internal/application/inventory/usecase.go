package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// DefaultMaxPastDays ventana por defecto para la fecha efectiva: el movimiento
// debe caer en [hoy − N, hoy + N].
const DefaultMaxPastDays = 365

// RegisterMovementUseCase es el coordinador transaccional de movimientos.
// Cada creación es una sección crítica por artículo: bloquea la fila del
// artículo (SELECT FOR UPDATE), deriva el stock dentro de la misma transacción
// cuando la regla lo necesita, valida, añade el asiento al libro y hace Commit.
// El stock nunca se lee antes de tener el bloqueo: dos salidas concurrentes
// sobre el mismo artículo deben serializarse en esa lectura.
// El caso de uso no reintenta ante ErrLockTimeout; eso es del caller.
type RegisterMovementUseCase struct {
	txRunner    TxRunner
	maxPastDays int
	now         func() time.Time
}

// NewRegisterMovementUseCase construye el coordinador. maxPastDays <= 0 usa el
// valor por defecto.
func NewRegisterMovementUseCase(txRunner TxRunner, maxPastDays int) *RegisterMovementUseCase {
	if maxPastDays <= 0 {
		maxPastDays = DefaultMaxPastDays
	}
	return &RegisterMovementUseCase{
		txRunner:    txRunner,
		maxPastDays: maxPastDays,
		now:         time.Now,
	}
}

// InboundInput entrada (IN): cantidad positiva, costo opcional que sobrescribe
// el costo unitario del artículo en el mismo commit.
type InboundInput struct {
	ItemID           string
	Quantity         decimal.Decimal
	EffectiveDate    time.Time
	UnitCostOverride *decimal.Decimal
	Note             string
	CreatedBy        string
}

// OutboundInput salida (OUT): cantidad positiva que se niega al persistir.
// Confirmed es el reconocimiento explícito del caller; sin él no se toca el libro.
type OutboundInput struct {
	ItemID        string
	Quantity      decimal.Decimal
	EffectiveDate time.Time
	Note          string
	Confirmed     bool
	CreatedBy     string
}

// AdjustmentInput rectificación: lleva el stock al objetivo; el delta se calcula
// con el bloqueo ya tomado. Nota obligatoria.
type AdjustmentInput struct {
	ItemID        string
	TargetStock   decimal.Decimal
	EffectiveDate time.Time
	Note          string
	CreatedBy     string
}

// Result movimiento persistido con el nombre del artículo para la respuesta.
type Result struct {
	Movement *entity.Movement
	ItemName string
}

// CreateInbound registra una entrada.
func (uc *RegisterMovementUseCase) CreateInbound(ctx context.Context, in InboundInput) (*Result, error) {
	if err := uc.validateEffectiveDate(in.EffectiveDate); err != nil {
		return nil, err
	}
	if err := validatePositiveQuantity(in.Quantity); err != nil {
		return nil, err
	}
	if in.UnitCostOverride != nil && in.UnitCostOverride.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var res Result
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		item, err := itemRepo.GetForUpdate(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		mov := uc.newMovement(in.ItemID, entity.MovementTypeIN, in.Quantity, in.EffectiveDate, in.Note, in.CreatedBy)
		mov.UnitCostOverride = in.UnitCostOverride
		if err := movRepo.Append(ctx, mov); err != nil {
			return err
		}
		// El costo del artículo se sobrescribe en el mismo commit que el asiento.
		if in.UnitCostOverride != nil {
			if err := itemRepo.UpdateUnitCost(ctx, item.ID, *in.UnitCostOverride); err != nil {
				return err
			}
		}
		res = Result{Movement: mov, ItemName: item.Name}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateOutbound registra una salida validando el stock con la fila bloqueada.
func (uc *RegisterMovementUseCase) CreateOutbound(ctx context.Context, in OutboundInput) (*Result, error) {
	if !in.Confirmed {
		return nil, domain.ErrConfirmationRequired
	}
	if err := uc.validateEffectiveDate(in.EffectiveDate); err != nil {
		return nil, err
	}
	if err := validatePositiveQuantity(in.Quantity); err != nil {
		return nil, err
	}

	var res Result
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		item, err := itemRepo.GetForUpdate(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		// Instantánea post-bloqueo: ninguna otra salida del mismo artículo
		// puede leer este stock hasta el Commit/Rollback.
		current, err := movRepo.SumQuantityByItem(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if current.LessThan(in.Quantity) {
			return domain.ErrInsufficientStock
		}

		mov := uc.newMovement(in.ItemID, entity.MovementTypeOUT, in.Quantity.Neg(), in.EffectiveDate, in.Note, in.CreatedBy)
		if err := movRepo.Append(ctx, mov); err != nil {
			return err
		}
		res = Result{Movement: mov, ItemName: item.Name}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateAdjustment registra una rectificación hacia un stock objetivo >= 0.
func (uc *RegisterMovementUseCase) CreateAdjustment(ctx context.Context, in AdjustmentInput) (*Result, error) {
	if err := uc.validateEffectiveDate(in.EffectiveDate); err != nil {
		return nil, err
	}
	if in.TargetStock.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if !in.TargetStock.Equal(in.TargetStock.Truncate(entity.QuantityDecimalPlaces)) {
		return nil, domain.ErrInvalidInput
	}
	if strings.TrimSpace(in.Note) == "" {
		return nil, domain.ErrInvalidInput
	}

	var res Result
	err := uc.txRunner.Run(ctx, func(itemRepo repository.ItemRepository, movRepo repository.MovementRepository) error {
		item, err := itemRepo.GetForUpdate(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		current, err := movRepo.SumQuantityByItem(ctx, in.ItemID)
		if err != nil {
			return err
		}
		delta := in.TargetStock.Sub(current)
		// Un delta cero es un error del usuario, no un no-op silencioso.
		if delta.IsZero() {
			return domain.ErrAdjustmentNotNeeded
		}

		mov := uc.newMovement(in.ItemID, entity.MovementTypeADJUSTMENT, delta, in.EffectiveDate, strings.TrimSpace(in.Note), in.CreatedBy)
		if err := movRepo.Append(ctx, mov); err != nil {
			return err
		}
		res = Result{Movement: mov, ItemName: item.Name}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (uc *RegisterMovementUseCase) newMovement(itemID, movType string, qty decimal.Decimal, effectiveDate time.Time, note, createdBy string) *entity.Movement {
	return &entity.Movement{
		ID:            uuid.New().String(),
		ItemID:        itemID,
		Type:          movType,
		Quantity:      qty,
		EffectiveDate: effectiveDate,
		CreatedAt:     uc.now(),
		Note:          note,
		CreatedBy:     createdBy,
	}
}

// validateEffectiveDate comprueba la ventana [hoy − N, hoy + N]. Es validación
// pura de entrada: se ejecuta antes de tomar ningún bloqueo.
func (uc *RegisterMovementUseCase) validateEffectiveDate(d time.Time) error {
	if d.IsZero() {
		return domain.ErrInvalidInput
	}
	today := uc.now().Truncate(24 * time.Hour)
	day := d.Truncate(24 * time.Hour)
	window := time.Duration(uc.maxPastDays) * 24 * time.Hour
	if day.Before(today.Add(-window)) || day.After(today.Add(window)) {
		return domain.ErrInvalidDateRange
	}
	return nil
}

func validatePositiveQuantity(q decimal.Decimal) error {
	if q.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if !q.Equal(q.Truncate(entity.QuantityDecimalPlaces)) {
		return domain.ErrInvalidInput
	}
	return nil
}
