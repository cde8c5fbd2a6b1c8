package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = "id, name, category, unit, notes, min_stock, unit_cost, created_at, updated_at"

// ItemRepo implementación de ItemRepository sobre PostgreSQL (usable con pool o tx).
// La columna name_norm guarda el nombre normalizado (casefold + trim) y lleva
// un índice único como respaldo de la comprobación de duplicados.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

// Create persiste un artículo nuevo.
func (r *ItemRepo) Create(ctx context.Context, item *entity.Item) error {
	query := `
		INSERT INTO items (id, name, name_norm, category, unit, notes, min_stock, unit_cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.Name, domain.NormalizeName(item.Name), nullIfEmpty(item.Category),
		item.Unit, nullIfEmpty(item.Notes), item.MinStock, item.UnitCost,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo, (nil, nil) si no existe.
func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.Item, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
}

// GetForUpdate obtiene el artículo bloqueando su fila (SELECT FOR UPDATE).
func (r *ItemRepo) GetForUpdate(ctx context.Context, id string) (*entity.Item, error) {
	return r.getOne(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1 FOR UPDATE`, id)
}

// FindByNormalizedName busca por nombre normalizado, excluyendo opcionalmente un id.
func (r *ItemRepo) FindByNormalizedName(ctx context.Context, normalized, excludeID string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE name_norm = $1`
	args := []any{normalized}
	if excludeID != "" {
		query += " AND id != $2"
		args = append(args, excludeID)
	}
	return r.getOne(ctx, query, args...)
}

// Update persiste los campos editables del artículo.
func (r *ItemRepo) Update(ctx context.Context, item *entity.Item) error {
	query := `
		UPDATE items
		SET name = $2, name_norm = $3, category = $4, unit = $5, notes = $6,
		    min_stock = $7, unit_cost = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		item.ID, item.Name, domain.NormalizeName(item.Name), nullIfEmpty(item.Category),
		item.Unit, nullIfEmpty(item.Notes), item.MinStock, item.UnitCost, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("update item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateUnitCost sobrescribe el costo unitario (lo usa el coordinador dentro
// de la misma transacción que el asiento IN).
func (r *ItemRepo) UpdateUnitCost(ctx context.Context, itemID string, cost decimal.Decimal) error {
	query := `UPDATE items SET unit_cost = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, itemID, cost)
	if err != nil {
		return fmt.Errorf("update unit cost: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el artículo. El FK RESTRICT de movements respalda la regla de
// negocio: nunca se borra un artículo con movimientos.
func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListCategories valores distintos de categoría, filtrables por subcadena.
func (r *ItemRepo) ListCategories(ctx context.Context, search string) ([]string, error) {
	query := `SELECT DISTINCT category FROM items WHERE category IS NOT NULL`
	args := []any{}
	if search != "" {
		query += ` AND category ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY category`
	return r.listStrings(ctx, query, args...)
}

// ListUnits valores distintos de unidad de medida.
func (r *ItemRepo) ListUnits(ctx context.Context) ([]string, error) {
	return r.listStrings(ctx, `SELECT DISTINCT unit FROM items ORDER BY unit`)
}

func (r *ItemRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Item, error) {
	var it entity.Item
	var category, notes *string
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&it.ID, &it.Name, &category, &it.Unit, &notes,
		&it.MinStock, &it.UnitCost, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if isLockNotAvailable(err) {
			return nil, err
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	if category != nil {
		it.Category = *category
	}
	if notes != nil {
		it.Notes = *notes
	}
	return &it, nil
}

func (r *ItemRepo) listStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list strings: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan string: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
