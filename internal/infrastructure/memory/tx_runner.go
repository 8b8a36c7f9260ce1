package memory

import (
	"context"

	"github.com/jhoicas/Joyeria-api/internal/application/inventory"
	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner versión en memoria de la transacción del libro: ejecuta fn sobre
// los repos y, si falla, restaura el estado previo (rollback por snapshot).
type TxRunner struct {
	movementRepo *MovementRepo
	balanceRepo  *BalanceRepo
}

// NewTxRunner construye el runner sobre los repos en memoria.
func NewTxRunner(movementRepo *MovementRepo, balanceRepo *BalanceRepo) *TxRunner {
	return &TxRunner{movementRepo: movementRepo, balanceRepo: balanceRepo}
}

// Run ejecuta fn con semántica todo-o-nada sobre los repos en memoria.
func (r *TxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	balanceRepo repository.BalanceRepository,
) error) error {
	movSnapshot := r.snapshotMovements()
	balSnapshot := r.snapshotBalances()

	if err := fn(r.movementRepo, r.balanceRepo); err != nil {
		r.restore(movSnapshot, balSnapshot)
		return err
	}
	return nil
}

func (r *TxRunner) snapshotMovements() []*entity.Movement {
	r.movementRepo.mu.Lock()
	defer r.movementRepo.mu.Unlock()
	return append([]*entity.Movement(nil), r.movementRepo.movements...)
}

func (r *TxRunner) snapshotBalances() map[balanceKey]*entity.Balance {
	r.balanceRepo.mu.Lock()
	defer r.balanceRepo.mu.Unlock()
	snapshot := make(map[balanceKey]*entity.Balance, len(r.balanceRepo.balances))
	for k, b := range r.balanceRepo.balances {
		copied := *b
		snapshot[k] = &copied
	}
	return snapshot
}

func (r *TxRunner) restore(movements []*entity.Movement, balances map[balanceKey]*entity.Balance) {
	r.movementRepo.mu.Lock()
	r.movementRepo.movements = movements
	r.movementRepo.mu.Unlock()

	r.balanceRepo.mu.Lock()
	r.balanceRepo.balances = balances
	r.balanceRepo.mu.Unlock()
}
