package dto

import "github.com/shopspring/decimal"

// DashboardStatsResponse agregados globales del almacén.
type DashboardStatsResponse struct {
	TotalStockValue decimal.Decimal `json:"total_stock_value"`
	UnderMinCount   int             `json:"under_min_count"`
	TotalItems      int             `json:"total_items"`
	ZeroStockCount  int             `json:"zero_stock_count"`
}
