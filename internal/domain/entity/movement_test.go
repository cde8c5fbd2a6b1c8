package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestMovementValidate_Validos(t *testing.T) {
	casos := map[string]entity.Movement{
		"entrada": {
			ItemID: "item-1", Type: entity.MovementTypeIN, Quantity: dec("5"),
		},
		"entrada con costo": {
			ItemID: "item-1", Type: entity.MovementTypeIN, Quantity: dec("0.001"),
			UnitCostOverride: decPtr("12.50"),
		},
		"salida": {
			ItemID: "item-1", Type: entity.MovementTypeOUT, Quantity: dec("-3"),
		},
		"ajuste negativo con nota": {
			ItemID: "item-1", Type: entity.MovementTypeADJUSTMENT, Quantity: dec("-2.5"),
			Note: "conteo físico",
		},
		"ajuste positivo con nota": {
			ItemID: "item-1", Type: entity.MovementTypeADJUSTMENT, Quantity: dec("4"),
			Note: "conteo físico",
		},
	}
	for nombre, m := range casos {
		assert.NoError(t, m.Validate(), nombre)
	}
}

func TestMovementValidate_Invalidos(t *testing.T) {
	casos := map[string]entity.Movement{
		"sin artículo": {
			Type: entity.MovementTypeIN, Quantity: dec("1"),
		},
		"cantidad cero": {
			ItemID: "item-1", Type: entity.MovementTypeIN, Quantity: decimal.Zero,
		},
		"más de 3 decimales": {
			ItemID: "item-1", Type: entity.MovementTypeIN, Quantity: dec("1.0001"),
		},
		"entrada negativa": {
			ItemID: "item-1", Type: entity.MovementTypeIN, Quantity: dec("-1"),
		},
		"salida positiva": {
			ItemID: "item-1", Type: entity.MovementTypeOUT, Quantity: dec("1"),
		},
		"salida con costo": {
			ItemID: "item-1", Type: entity.MovementTypeOUT, Quantity: dec("-1"),
			UnitCostOverride: decPtr("10"),
		},
		"ajuste sin nota": {
			ItemID: "item-1", Type: entity.MovementTypeADJUSTMENT, Quantity: dec("1"),
		},
		"ajuste con nota en blanco": {
			ItemID: "item-1", Type: entity.MovementTypeADJUSTMENT, Quantity: dec("1"), Note: "   ",
		},
		"ajuste con costo": {
			ItemID: "item-1", Type: entity.MovementTypeADJUSTMENT, Quantity: dec("1"),
			Note: "conteo", UnitCostOverride: decPtr("10"),
		},
		"tipo desconocido": {
			ItemID: "item-1", Type: "TRANSFER", Quantity: dec("1"),
		},
		"costo negativo": {
			ItemID: "item-1", Type: entity.MovementTypeIN, Quantity: dec("1"),
			UnitCostOverride: decPtr("-1"),
		},
	}
	for nombre, m := range casos {
		assert.ErrorIs(t, m.Validate(), domain.ErrInvalidInput, nombre)
	}
}
