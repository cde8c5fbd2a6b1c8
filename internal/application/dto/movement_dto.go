package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMovementRequest body para POST /api/movements.
// Unión etiquetada por Type: IN usa Quantity (+UnitCostOverride opcional),
// OUT usa Quantity y Confirmed, ADJUSTMENT usa TargetStock y Note obligatoria.
type CreateMovementRequest struct {
	ItemID           string           `json:"item_id"`
	Type             string           `json:"type"` // IN, OUT, ADJUSTMENT
	Quantity         decimal.Decimal  `json:"quantity,omitempty"`
	TargetStock      *decimal.Decimal `json:"target_stock,omitempty"`
	EffectiveDate    string           `json:"effective_date"` // YYYY-MM-DD
	UnitCostOverride *decimal.Decimal `json:"unit_cost_override,omitempty"`
	Note             string           `json:"note,omitempty"`
	Confirmed        bool             `json:"confirmed,omitempty"`
}

// MovementDetail movimiento con el nombre del artículo desnormalizado.
type MovementDetail struct {
	ID               string           `json:"id"`
	ItemID           string           `json:"item_id"`
	ItemName         string           `json:"item_name"`
	Type             string           `json:"type"`
	Quantity         decimal.Decimal  `json:"quantity"`
	EffectiveDate    string           `json:"effective_date"`
	CreatedAt        time.Time        `json:"created_at"`
	UnitCostOverride *decimal.Decimal `json:"unit_cost_override,omitempty"`
	Note             string           `json:"note,omitempty"`
	CreatedBy        string           `json:"created_by,omitempty"`
}

// MovementListResponse página del libro de movimientos.
type MovementListResponse struct {
	Movements []MovementDetail `json:"movements"`
	Total     int              `json:"total"`
	Limit     int              `json:"limit"`
	Offset    int              `json:"offset"`
}
