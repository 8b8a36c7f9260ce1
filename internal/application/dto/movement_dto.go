package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordMovementRequest entrada para registrar un movimiento.
// Para transfer: from_location_id y to_location_id obligatorios y distintos.
// Para el resto aplica la regla de fallback de ubicación del libro.
type RecordMovementRequest struct {
	ItemID         string          `json:"item_id"`
	Type           string          `json:"type"` // inward | outward | transfer | adjustment
	Quantity       decimal.Decimal `json:"quantity"`
	Weight         decimal.Decimal `json:"weight"`
	Unit           string          `json:"unit"`
	FromLocationID *string         `json:"from_location_id"`
	ToLocationID   *string         `json:"to_location_id"`
	Ref            string          `json:"ref"` // clave de idempotencia del documento origen
	Note           string          `json:"note"`
}

// RecordMovementResponse salida con el ID del movimiento registrado.
type RecordMovementResponse struct {
	MovementID string `json:"movement_id"`
}

// MovementResponse una entrada del libro mayor.
type MovementResponse struct {
	ID             string          `json:"id"`
	ItemID         string          `json:"item_id"`
	Type           string          `json:"type"`
	Quantity       decimal.Decimal `json:"quantity"`
	Weight         decimal.Decimal `json:"weight"`
	Unit           string          `json:"unit"`
	FromLocationID *string         `json:"from_location_id,omitempty"`
	ToLocationID   *string         `json:"to_location_id,omitempty"`
	Ref            string          `json:"ref,omitempty"`
	Note           string          `json:"note,omitempty"`
	CreatedBy      string          `json:"created_by"`
	CreatedAt      time.Time       `json:"created_at"`
}

// LedgerResponse listado del libro mayor, del más reciente al más antiguo.
type LedgerResponse struct {
	Movements []MovementResponse `json:"movements"`
	Page      PageResponse       `json:"page"`
}

// BalanceResponse balance actual de un par (pieza, ubicación).
type BalanceResponse struct {
	ItemID     string          `json:"item_id"`
	LocationID string          `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Weight     decimal.Decimal `json:"weight"`
	Unit       string          `json:"unit"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// BalanceListResponse balances no-cero del filtro pedido.
type BalanceListResponse struct {
	Balances []BalanceResponse `json:"balances"`
}
