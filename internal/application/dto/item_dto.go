package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/items.
type CreateItemRequest struct {
	Name     string           `json:"name"`
	Category string           `json:"category,omitempty"`
	Unit     string           `json:"unit,omitempty"` // por defecto "pz"
	Notes    string           `json:"notes,omitempty"`
	MinStock decimal.Decimal  `json:"min_stock"`
	UnitCost decimal.Decimal  `json:"unit_cost"`
}

// UpdateItemRequest body para PUT /api/items/{id}. Campos nil = sin cambio.
type UpdateItemRequest struct {
	Name     *string          `json:"name,omitempty"`
	Category *string          `json:"category,omitempty"`
	Unit     *string          `json:"unit,omitempty"`
	Notes    *string          `json:"notes,omitempty"`
	MinStock *decimal.Decimal `json:"min_stock,omitempty"`
	UnitCost *decimal.Decimal `json:"unit_cost,omitempty"`
}

// ItemWithStockResponse artículo con sus campos derivados del libro.
type ItemWithStockResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Category        string          `json:"category,omitempty"`
	Unit            string          `json:"unit"`
	Notes           string          `json:"notes,omitempty"`
	MinStock        decimal.Decimal `json:"min_stock"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	StockQuantity   decimal.Decimal `json:"stock_quantity"`
	StockValue      decimal.Decimal `json:"stock_value"`
	IsUnderMinStock bool            `json:"is_under_min_stock"`
	LastMovementAt  *time.Time      `json:"last_movement_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ItemListResponse página de artículos con stock.
type ItemListResponse struct {
	Items []ItemWithStockResponse `json:"items"`
	Total int                     `json:"total"`
}
