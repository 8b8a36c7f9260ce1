package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance es el agregado materializado por (pieza, ubicación), derivado del
// log de movimientos. Invariante: en todo instante es igual a la suma de las
// contribuciones firmadas de los movimientos que referencian el par. Solo lo
// escribe el proyector de balances, en la misma transacción del movimiento.
type Balance struct {
	ItemID     string
	LocationID string
	Quantity   decimal.Decimal
	Weight     decimal.Decimal
	Unit       string
	UpdatedAt  time.Time
}
