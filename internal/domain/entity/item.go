package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una pieza del catálogo.
const (
	ItemStatusActive   = "active"
	ItemStatusSold     = "sold"
	ItemStatusInactive = "inactive"
)

// Item representa una pieza o referencia del catálogo de joyería.
// El catálogo es administrado externamente; el libro de inventario solo
// referencia piezas por ID y únicamente puede mutar su Status.
type Item struct {
	ID         string
	SKU        string // código único de la pieza
	Name       string
	Metal      string          // gold, silver, platinum, ...
	Purity     string          // 24K, 22K, 18K, 925, ...
	Weight     decimal.Decimal // peso unitario de la pieza
	WeightUnit string          // g, ct
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
