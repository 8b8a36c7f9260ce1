package entity

import "time"

// Tipos de ubicación física donde vive el inventario.
const (
	LocationTypeBranch      = "branch"      // sucursal / punto de venta
	LocationTypeWarehouse   = "warehouse"   // bodega central
	LocationTypeSafe        = "safe"        // caja fuerte
	LocationTypeConsignment = "consignment" // consignación con terceros
)

// Location representa un nodo del árbol de ubicaciones. ParentID opcional
// (una caja fuerte dentro de una sucursal, por ejemplo); se asigna al crear
// y no se reparenta después.
type Location struct {
	ID        string
	Name      string // único en todo el registro
	Type      string
	Address   string
	ParentID  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidLocationType verifica que el tipo sea uno de los conocidos.
func ValidLocationType(t string) bool {
	switch t {
	case LocationTypeBranch, LocationTypeWarehouse, LocationTypeSafe, LocationTypeConsignment:
		return true
	}
	return false
}
