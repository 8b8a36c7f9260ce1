package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceSnapshot es un punto de la serie de precios de metal, solo-inserción.
// La valuación lee el snapshot más reciente por (metal, pureza).
type PriceSnapshot struct {
	ID       string
	Metal    string
	Purity   string
	Rate     decimal.Decimal // precio por unidad de peso
	Currency string
	TakenAt  time.Time
}
