package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ValuationRow es una línea del join balances × piezas × último precio.
// Rate es cero y RateTakenAt nil cuando no existe snapshot para la clave
// (metal, pureza) de la pieza: la valuación es advisory, no transaccional.
type ValuationRow struct {
	ItemID      string
	SKU         string
	Name        string
	Metal       string
	Purity      string
	LocationID  string
	Quantity    decimal.Decimal
	Weight      decimal.Decimal
	Unit        string
	Rate        decimal.Decimal
	RateTakenAt *time.Time
}

// ValuationRepository consulta de solo lectura para la valuación del
// inventario: todos los balances no-cero con su metadato de pieza y el
// snapshot de precio más reciente por (metal, pureza).
type ValuationRepository interface {
	GetValuationRows(ctx context.Context) ([]ValuationRow, error)
}
