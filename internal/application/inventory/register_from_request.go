package inventory

import (
	"context"
	"time"

	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
)

// RegisterFromRequest adapta el request HTTP a los tres puntos de entrada del
// coordinador, despachando por el tipo etiquetado (IN/OUT/ADJUSTMENT).
func (uc *RegisterMovementUseCase) RegisterFromRequest(ctx context.Context, createdBy string, in dto.CreateMovementRequest) (*Result, error) {
	if in.ItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	effectiveDate, err := time.Parse("2006-01-02", in.EffectiveDate)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	switch in.Type {
	case entity.MovementTypeIN:
		return uc.CreateInbound(ctx, InboundInput{
			ItemID:           in.ItemID,
			Quantity:         in.Quantity,
			EffectiveDate:    effectiveDate,
			UnitCostOverride: in.UnitCostOverride,
			Note:             in.Note,
			CreatedBy:        createdBy,
		})
	case entity.MovementTypeOUT:
		return uc.CreateOutbound(ctx, OutboundInput{
			ItemID:        in.ItemID,
			Quantity:      in.Quantity,
			EffectiveDate: effectiveDate,
			Note:          in.Note,
			Confirmed:     in.Confirmed,
			CreatedBy:     createdBy,
		})
	case entity.MovementTypeADJUSTMENT:
		if in.TargetStock == nil {
			return nil, domain.ErrInvalidInput
		}
		return uc.CreateAdjustment(ctx, AdjustmentInput{
			ItemID:        in.ItemID,
			TargetStock:   *in.TargetStock,
			EffectiveDate: effectiveDate,
			Note:          in.Note,
			CreatedBy:     createdBy,
		})
	default:
		return nil, domain.ErrInvalidInput
	}
}
