package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// stockJoin agrega el libro una sola vez y lo une al registro de artículos.
// Es la única forma de derivar stock: no existe columna de stock en items.
const stockJoin = `
	FROM items i
	LEFT JOIN (
		SELECT item_id, SUM(quantity) AS stock_quantity, MAX(created_at) AS last_movement_at
		FROM movements
		GROUP BY item_id
	) s ON s.item_id = i.id`

// StockRepo lado de lectura del agregador: consultas join + agregación en una
// sola pasada, nunca una consulta por artículo.
type StockRepo struct {
	pool *pgxpool.Pool
}

// NewStockRepository construye el adaptador de lectura.
func NewStockRepository(pool *pgxpool.Pool) *StockRepo {
	return &StockRepo{pool: pool}
}

// sortColumns lista blanca de claves de ordenación -> expresión SQL.
var sortColumns = map[string]string{
	repository.SortByName:            "i.name",
	repository.SortByCategory:        "i.category",
	repository.SortByStockQuantity:   "COALESCE(s.stock_quantity, 0)",
	repository.SortByIsUnderMinStock: "(COALESCE(s.stock_quantity, 0) < i.min_stock)",
}

// ListWithStock lista artículos con stock derivado, valor y bandera bajo mínimo.
func (r *StockRepo) ListWithStock(ctx context.Context, q repository.StockQuery) ([]*repository.ItemWithStock, error) {
	query := `
	SELECT i.id, i.name, i.category, i.unit, i.notes, i.min_stock, i.unit_cost,
	       i.created_at, i.updated_at,
	       COALESCE(s.stock_quantity, 0)               AS stock_quantity,
	       COALESCE(s.stock_quantity, 0) * i.unit_cost AS stock_value,
	       COALESCE(s.stock_quantity, 0) < i.min_stock AS is_under_min_stock,
	       s.last_movement_at` + stockJoin

	where := ""
	args := []any{}
	pos := 1
	if q.Search != "" {
		where += andWhere(where) + fmt.Sprintf("i.name ILIKE $%d", pos)
		args = append(args, "%"+q.Search+"%")
		pos++
	}
	if q.Category != "" {
		where += andWhere(where) + fmt.Sprintf("i.category = $%d", pos)
		args = append(args, q.Category)
		pos++
	}
	if q.UnderMinOnly {
		where += andWhere(where) + "COALESCE(s.stock_quantity, 0) < i.min_stock"
	}
	query += where

	sortCol, ok := sortColumns[q.SortBy]
	if !ok {
		sortCol = "i.name"
	}
	dir := "ASC"
	if q.SortOrder == "desc" {
		dir = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s, i.name ASC", sortCol, dir)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list with stock: %w", err)
	}
	defer rows.Close()

	var list []*repository.ItemWithStock
	for rows.Next() {
		var row repository.ItemWithStock
		var category, notes *string
		if err := rows.Scan(
			&row.Item.ID, &row.Item.Name, &category, &row.Item.Unit, &notes,
			&row.Item.MinStock, &row.Item.UnitCost, &row.Item.CreatedAt, &row.Item.UpdatedAt,
			&row.StockQuantity, &row.StockValue, &row.IsUnderMinStock, &row.LastMovementAt,
		); err != nil {
			return nil, fmt.Errorf("scan item with stock: %w", err)
		}
		if category != nil {
			row.Item.Category = *category
		}
		if notes != nil {
			row.Item.Notes = *notes
		}
		list = append(list, &row)
	}
	return list, rows.Err()
}

// DashboardTotals agregados globales en una sola consulta.
func (r *StockRepo) DashboardTotals(ctx context.Context) (*repository.DashboardTotals, error) {
	query := `
	SELECT COALESCE(SUM(COALESCE(s.stock_quantity, 0) * i.unit_cost), 0) AS total_stock_value,
	       COUNT(*) FILTER (WHERE COALESCE(s.stock_quantity, 0) < i.min_stock) AS under_min_count,
	       COUNT(i.id) AS total_items,
	       COUNT(*) FILTER (WHERE COALESCE(s.stock_quantity, 0) = 0) AS zero_stock_count` + stockJoin

	var t repository.DashboardTotals
	err := r.pool.QueryRow(ctx, query).Scan(
		&t.TotalStockValue, &t.UnderMinCount, &t.TotalItems, &t.ZeroStockCount,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard totals: %w", err)
	}
	return &t, nil
}

// ComputeStock stock derivado de un artículo: SUM(quantity), 0 sin movimientos.
func (r *StockRepo) ComputeStock(ctx context.Context, itemID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	query := `SELECT COALESCE(SUM(quantity), 0) FROM movements WHERE item_id = $1`
	if err := r.pool.QueryRow(ctx, query, itemID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("compute stock: %w", err)
	}
	return sum, nil
}

func andWhere(where string) string {
	if where == "" {
		return " WHERE "
	}
	return " AND "
}
