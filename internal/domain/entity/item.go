package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa un artículo del almacén (datos maestros).
// No guarda cantidad en stock: el stock se deriva siempre de los movimientos.
// UnitCost es mutable y puede ser sobrescrito por una entrada (IN) con costo.
type Item struct {
	ID        string
	Name      string          // único (case-insensitive, sin espacios extremos)
	Category  string          // opcional, texto libre para agrupación/autocompletado
	Unit      string          // unidad de medida, por defecto "pz"
	Notes     string          // opcional
	MinStock  decimal.Decimal // umbral mínimo, >= 0
	UnitCost  decimal.Decimal // costo unitario, >= 0
	CreatedAt time.Time
	UpdatedAt time.Time
}
