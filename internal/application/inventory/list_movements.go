package inventory

import (
	"context"
	"time"

	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// DefaultListDays rango de fechas por defecto del listado: últimos 30 días.
const DefaultListDays = 30

// ListMovementsUseCase consulta de solo lectura sobre el libro; no toma
// bloqueos ni transacciones (los lectores toleran read skew).
type ListMovementsUseCase struct {
	movRepo repository.MovementRepository
	now     func() time.Time
}

// NewListMovementsUseCase construye el caso de uso.
func NewListMovementsUseCase(movRepo repository.MovementRepository) *ListMovementsUseCase {
	return &ListMovementsUseCase{movRepo: movRepo, now: time.Now}
}

// List aplica los valores por defecto del rango y delega en el repositorio.
// Devuelve la página (CreatedAt DESC) y el total sin paginar.
func (uc *ListMovementsUseCase) List(ctx context.Context, f repository.MovementFilter) ([]*repository.MovementWithItem, int, error) {
	if f.Type != "" {
		switch f.Type {
		case entity.MovementTypeIN, entity.MovementTypeOUT, entity.MovementTypeADJUSTMENT:
		default:
			return nil, 0, domain.ErrInvalidInput
		}
	}
	today := uc.now().Truncate(24 * time.Hour)
	if f.FromDate == nil {
		from := today.AddDate(0, 0, -DefaultListDays)
		f.FromDate = &from
	}
	if f.ToDate == nil {
		f.ToDate = &today
	}
	if f.Limit <= 0 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return uc.movRepo.List(ctx, f)
}
