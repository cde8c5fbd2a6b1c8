package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/almacen-api/internal/application/inventory"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL con un
// lock_timeout acotado: la espera por el bloqueo de fila (SELECT FOR UPDATE)
// nunca es indefinida, y su agotamiento sale como domain.ErrLockTimeout para
// que el caller decida reintentar.
type TxRunner struct {
	pool              *pgxpool.Pool
	lockTimeoutMillis int
}

// NewTxRunner construye el runner. lockTimeoutMillis <= 0 usa 5000.
func NewTxRunner(pool *pgxpool.Pool, lockTimeoutMillis int) *TxRunner {
	if lockTimeoutMillis <= 0 {
		lockTimeoutMillis = 5000
	}
	return &TxRunner{pool: pool, lockTimeoutMillis: lockTimeoutMillis}
}

// Run inicia una transacción, fija el lock_timeout local, ejecuta fn con repos
// atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	itemRepo repository.ItemRepository,
	movRepo repository.MovementRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// SET LOCAL solo afecta a esta transacción.
	if _, err := tx.Exec(ctx, fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeoutMillis)); err != nil {
		return fmt.Errorf("set lock_timeout: %w", err)
	}

	itemRepo := NewItemRepository(tx)
	movRepo := NewMovementRepository(tx)

	if err := fn(itemRepo, movRepo); err != nil {
		if isLockNotAvailable(err) {
			return domain.ErrLockTimeout
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
