package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeInward     = "inward"     // entrada (compra, recepción, producción)
	MovementTypeOutward    = "outward"    // salida (venta, entrega)
	MovementTypeTransfer   = "transfer"   // traslado entre ubicaciones
	MovementTypeAdjustment = "adjustment" // ajuste manual (merma, corrección)
)

// Movement es el registro inmutable de un evento físico de inventario.
// Es la fuente de verdad del libro: nunca se actualiza ni se borra; las
// correcciones son nuevos movimientos compensatorios.
type Movement struct {
	ID             string
	ItemID         string
	Type           string
	Quantity       decimal.Decimal // siempre el monto del evento; el signo lo da el tipo (en adjustment puede ser negativo)
	Weight         decimal.Decimal
	Unit           string  // unidad de peso: g, ct
	FromLocationID *string // nil = sin ubicación de origen
	ToLocationID   *string // nil = sin ubicación de destino
	Ref            string  // puntero al documento origen; clave de idempotencia del caller
	Note           string
	CreatedBy      string
	CreatedAt      time.Time
}

// ValidMovementType verifica que el tipo sea uno de los cuatro conocidos.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeInward, MovementTypeOutward, MovementTypeTransfer, MovementTypeAdjustment:
		return true
	}
	return false
}
