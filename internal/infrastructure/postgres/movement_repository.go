package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL.
// Solo inserta y lee: la tabla no recibe UPDATE ni DELETE desde la aplicación,
// y los CHECK de scripts/schema.sql respaldan las invariantes de almacenamiento.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Append añade un asiento al libro. Valida las invariantes de almacenamiento
// como respaldo antes de insertar; la validación de negocio es del coordinador.
func (r *MovementRepo) Append(ctx context.Context, m *entity.Movement) error {
	if err := m.Validate(); err != nil {
		return err
	}
	query := `
		INSERT INTO movements (id, item_id, type, quantity, effective_date, created_at, unit_cost_override, note, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ItemID, m.Type, m.Quantity, m.EffectiveDate, m.CreatedAt,
		m.UnitCostOverride, nullIfEmpty(m.Note), nullIfEmpty(m.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("append movement: %w", err)
	}
	return nil
}

// List devuelve la página (CreatedAt DESC, join con items para el nombre) y el
// total sin paginar. Las fechas filtran por fecha efectiva.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*repository.MovementWithItem, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	pos := 1
	if f.FromDate != nil {
		where += fmt.Sprintf(" AND m.effective_date >= $%d", pos)
		args = append(args, *f.FromDate)
		pos++
	}
	if f.ToDate != nil {
		where += fmt.Sprintf(" AND m.effective_date <= $%d", pos)
		args = append(args, *f.ToDate)
		pos++
	}
	if f.ItemID != "" {
		where += fmt.Sprintf(" AND m.item_id = $%d", pos)
		args = append(args, f.ItemID)
		pos++
	}
	if f.Type != "" {
		where += fmt.Sprintf(" AND m.type = $%d", pos)
		args = append(args, f.Type)
		pos++
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM movements m` + where
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	query := `
		SELECT m.id, m.item_id, i.name, m.type, m.quantity, m.effective_date,
		       m.created_at, m.unit_cost_override, m.note, m.created_by
		FROM movements m
		JOIN items i ON i.id = m.item_id` + where +
		fmt.Sprintf(" ORDER BY m.created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, f.Limit, f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*repository.MovementWithItem
	for rows.Next() {
		var m repository.MovementWithItem
		var note, createdBy *string
		if err := rows.Scan(&m.ID, &m.ItemID, &m.ItemName, &m.Type, &m.Quantity,
			&m.EffectiveDate, &m.CreatedAt, &m.UnitCostOverride, &note, &createdBy); err != nil {
			return nil, 0, fmt.Errorf("scan movement: %w", err)
		}
		if note != nil {
			m.Note = *note
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, total, rows.Err()
}

// SumQuantityByItem deriva el stock actual: SUM(quantity), 0 sin movimientos.
func (r *MovementRepo) SumQuantityByItem(ctx context.Context, itemID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	query := `SELECT COALESCE(SUM(quantity), 0) FROM movements WHERE item_id = $1`
	if err := r.q.QueryRow(ctx, query, itemID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum quantity: %w", err)
	}
	return sum, nil
}

// CountByItemSince cuenta movimientos del artículo con fecha efectiva >= since.
func (r *MovementRepo) CountByItemSince(ctx context.Context, itemID string, since time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM movements WHERE item_id = $1 AND effective_date >= $2`
	if err := r.q.QueryRow(ctx, query, itemID, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("count movements since: %w", err)
	}
	return count, nil
}
