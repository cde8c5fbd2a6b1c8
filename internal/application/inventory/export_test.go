package inventory

import "time"

// SetNow fija el reloj del caso de uso en los tests.
func (uc *RegisterMovementUseCase) SetNow(now func() time.Time) {
	uc.now = now
}

// SetNow fija el reloj del listado en los tests.
func (uc *ListMovementsUseCase) SetNow(now func() time.Time) {
	uc.now = now
}
