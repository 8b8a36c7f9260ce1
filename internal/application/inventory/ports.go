package inventory

import (
	"context"

	"github.com/jhoicas/Joyeria-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el movimiento y su proyección
// de balance se apliquen como unidad atómica: un lector nunca observa uno
// sin el otro.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		balanceRepo repository.BalanceRepository,
	) error) error
}
