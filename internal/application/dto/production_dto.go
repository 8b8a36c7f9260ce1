package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProduceRequest entrada para producir piezas terminadas a partir de su BOM.
// Los componentes se asumen disponibles en to_location_id.
type ProduceRequest struct {
	ProductID      string          `json:"product_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	ToLocationID   string          `json:"to_location_id"`
	FinishedWeight decimal.Decimal `json:"finished_weight"`
	Unit           string          `json:"unit"`
	Note           string          `json:"note"`
}

// ProduceResponse confirma la producción con el ref del episodio y los
// movimientos generados (consumos + entrada del terminado).
type ProduceResponse struct {
	Ref         string   `json:"ref"`
	MovementIDs []string `json:"movement_ids"`
}

// BOMComponentDTO línea de la receta.
type BOMComponentDTO struct {
	ItemID   string          `json:"item_id"`
	Quantity decimal.Decimal `json:"quantity"`
	Weight   decimal.Decimal `json:"weight"`
	Unit     string          `json:"unit"`
}

// UpsertBOMRequest reemplazo completo de la receta de un producto.
type UpsertBOMRequest struct {
	Components []BOMComponentDTO `json:"components"`
}

// BOMResponse receta vigente de un producto.
type BOMResponse struct {
	ProductID  string            `json:"product_id"`
	Components []BOMComponentDTO `json:"components"`
	UpdatedBy  string            `json:"updated_by,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
