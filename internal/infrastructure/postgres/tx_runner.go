package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Joyeria-api/internal/application/inventory"
	"github.com/jhoicas/Joyeria-api/internal/domain"
	"github.com/jhoicas/Joyeria-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL. Es la
// garantía de atomicidad del libro: el append del movimiento y su proyección
// de balance comparten la misma tx.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Errores transitorios de Postgres (serialización,
// deadlock, conexión) se envuelven en ErrStorageUnavailable para que el
// caller reintente con el mismo ref.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	balanceRepo repository.BalanceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %v", domain.ErrStorageUnavailable, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewMovementRepository(tx)
	balanceRepo := NewBalanceRepository(tx)

	if err := fn(movRepo, balanceRepo); err != nil {
		if isTransient(err) {
			return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
		}
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isTransient(err) {
			return fmt.Errorf("%w: commit transaction: %v", domain.ErrStorageUnavailable, err)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
