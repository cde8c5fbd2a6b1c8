package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-api/internal/domain"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN         = "IN"         // entrada
	MovementTypeOUT        = "OUT"        // salida
	MovementTypeADJUSTMENT = "ADJUSTMENT" // rectificación a un stock objetivo
)

// QuantityDecimalPlaces máximo de decimales admitidos en cantidades.
const QuantityDecimalPlaces = 3

// Movement es un evento inmutable del libro de movimientos (append-only).
// Nunca se actualiza ni se elimina; las correcciones son movimientos nuevos.
// El stock actual de un artículo es SUM(Quantity) de sus movimientos.
type Movement struct {
	ID               string
	ItemID           string
	Type             string          // IN, OUT, ADJUSTMENT
	Quantity         decimal.Decimal // firmada: IN > 0, OUT < 0, ADJUSTMENT != 0
	EffectiveDate    time.Time       // fecha de negocio atribuida al movimiento
	CreatedAt        time.Time       // timestamp inmutable de registro
	UnitCostOverride *decimal.Decimal // solo IN; sobrescribe el costo del artículo
	Note             string          // obligatoria en ADJUSTMENT
	CreatedBy        string          // sujeto del token, vacío si no hay auth
}

// Validate es el respaldo de las invariantes de almacenamiento del libro.
// La validación de negocio (fechas, stock, confirmación) es del coordinador.
func (m *Movement) Validate() error {
	if m.ItemID == "" {
		return domain.ErrInvalidInput
	}
	if m.Quantity.IsZero() {
		return domain.ErrInvalidInput
	}
	if !m.Quantity.Equal(m.Quantity.Truncate(QuantityDecimalPlaces)) {
		return domain.ErrInvalidInput
	}
	switch m.Type {
	case MovementTypeIN:
		if m.Quantity.LessThanOrEqual(decimal.Zero) {
			return domain.ErrInvalidInput
		}
	case MovementTypeOUT:
		if m.Quantity.GreaterThanOrEqual(decimal.Zero) {
			return domain.ErrInvalidInput
		}
		if m.UnitCostOverride != nil {
			return domain.ErrInvalidInput
		}
	case MovementTypeADJUSTMENT:
		if strings.TrimSpace(m.Note) == "" {
			return domain.ErrInvalidInput
		}
		if m.UnitCostOverride != nil {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	if m.UnitCostOverride != nil && m.UnitCostOverride.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	return nil
}
