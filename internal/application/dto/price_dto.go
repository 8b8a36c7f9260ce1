package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePriceSnapshotRequest ingesta de un punto de precio del feed.
type CreatePriceSnapshotRequest struct {
	Metal    string          `json:"metal"`
	Purity   string          `json:"purity"`
	Rate     decimal.Decimal `json:"rate"`
	Currency string          `json:"currency"`
}

// PriceSnapshotResponse un punto de la serie de precios.
type PriceSnapshotResponse struct {
	ID       string          `json:"id"`
	Metal    string          `json:"metal"`
	Purity   string          `json:"purity"`
	Rate     decimal.Decimal `json:"rate"`
	Currency string          `json:"currency"`
	TakenAt  time.Time       `json:"taken_at"`
}

// LatestPricesResponse último snapshot por clave (metal, pureza).
type LatestPricesResponse struct {
	Prices []PriceSnapshotResponse `json:"prices"`
}
