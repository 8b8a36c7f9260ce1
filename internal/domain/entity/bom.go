package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BOMComponent es una línea de la receta: componente consumible y cuánto
// se necesita por unidad producida.
type BOMComponent struct {
	ItemID   string
	Quantity decimal.Decimal // por unidad de producto terminado
	Weight   decimal.Decimal
	Unit     string
}

// BOM es la lista de materiales de un producto terminado. Un documento por
// producto; se versiona por reemplazo completo y es de solo lectura durante
// la producción.
type BOM struct {
	ProductID  string
	Components []BOMComponent
	UpdatedBy  string
	UpdatedAt  time.Time
}
