package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ValuationLine una pieza valorada al último precio conocido de su
// (metal, pureza). Rate cero cuando no hay snapshot para la clave.
type ValuationLine struct {
	ItemID      string          `json:"item_id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Metal       string          `json:"metal"`
	Purity      string          `json:"purity"`
	LocationID  string          `json:"location_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Weight      decimal.Decimal `json:"weight"`
	Unit        string          `json:"unit"`
	Rate        decimal.Decimal `json:"rate"`
	RateTakenAt *time.Time      `json:"rate_taken_at,omitempty"`
	Value       decimal.Decimal `json:"value"`
}

// ValuationResponse valuación puntual del inventario completo.
type ValuationResponse struct {
	Total    decimal.Decimal `json:"total"`
	Currency string          `json:"currency"`
	Lines    []ValuationLine `json:"lines"`
}
