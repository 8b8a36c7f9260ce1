package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest alta mínima de pieza (el catálogo completo vive fuera).
type CreateItemRequest struct {
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	Metal      string          `json:"metal"`
	Purity     string          `json:"purity"`
	Weight     decimal.Decimal `json:"weight"`
	WeightUnit string          `json:"weight_unit"`
}

// UpdateItemStatusRequest única mutación de pieza que el libro posee.
type UpdateItemStatusRequest struct {
	Status string `json:"status"` // active | sold | inactive
}

// ItemResponse salida de una pieza.
type ItemResponse struct {
	ID         string          `json:"id"`
	SKU        string          `json:"sku"`
	Name       string          `json:"name"`
	Metal      string          `json:"metal"`
	Purity     string          `json:"purity"`
	Weight     decimal.Decimal `json:"weight"`
	WeightUnit string          `json:"weight_unit"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ItemListResponse lista paginada de piezas.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
