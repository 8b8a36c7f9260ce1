package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
)

// BalanceRepository puerto del agregado materializado (pieza, ubicación).
// Un par nunca tocado se lee como balance cero.
type BalanceRepository interface {
	Get(itemID, locationID string) (*entity.Balance, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) dentro de la
	// transacción en curso. Un par sin fila se lee como cero y no
	// bloquea nada; por eso la proyección escribe con ApplyDelta y no
	// con un valor absoluto.
	GetForUpdate(itemID, locationID string) (*entity.Balance, error)
	// ApplyDelta suma el delta al balance del par de forma atómica,
	// materializando la fila si no existe. Dos primeras escrituras
	// concurrentes sobre un par virgen no se pierden.
	ApplyDelta(itemID, locationID string, deltaQty, deltaWeight decimal.Decimal, unit string) error
	// Upsert escribe el valor absoluto de la fila (reparación de
	// conciliación; la proyección normal usa ApplyDelta).
	Upsert(balance *entity.Balance) error
	// List devuelve las filas materializadas; itemID y locationID opcionales.
	// Un par que nunca recibió movimientos no tiene fila.
	List(ctx context.Context, itemID, locationID string) ([]*entity.Balance, error)
}
