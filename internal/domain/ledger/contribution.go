// Package ledger contiene la regla pura del libro de inventario: cómo un
// movimiento contribuye, con signo y ubicación, al balance materializado.
// Sin dependencias de infraestructura para poder testearla en aislamiento.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Joyeria-api/internal/domain"
	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
)

// Contribution es el delta que un movimiento aplica al balance de una
// ubicación concreta. Un movimiento simple produce una contribución; un
// transfer produce dos (negativa en origen, positiva en destino).
type Contribution struct {
	LocationID string
	Quantity   decimal.Decimal
	Weight     decimal.Decimal
}

// Contributions calcula las contribuciones firmadas de un movimiento según
// su tipo:
//
//	inward:     +monto en to (fallback from)
//	outward:    -monto en from (fallback to)
//	transfer:   -monto en from y +monto en to
//	adjustment: monto firmado en to (fallback from); negativo = merma
//
// Devuelve ErrInvalidInput si el tipo es desconocido o si falta la ubicación
// que la regla exige.
func Contributions(m *entity.Movement) ([]Contribution, error) {
	switch m.Type {
	case entity.MovementTypeInward:
		loc := fallback(m.ToLocationID, m.FromLocationID)
		if loc == "" {
			return nil, domain.ErrInvalidInput
		}
		return []Contribution{{LocationID: loc, Quantity: m.Quantity, Weight: m.Weight}}, nil

	case entity.MovementTypeOutward:
		loc := fallback(m.FromLocationID, m.ToLocationID)
		if loc == "" {
			// Salida sin ubicación: no toca ningún balance (pieza sin destino rastreado).
			return nil, nil
		}
		return []Contribution{{LocationID: loc, Quantity: m.Quantity.Neg(), Weight: m.Weight.Neg()}}, nil

	case entity.MovementTypeTransfer:
		if m.FromLocationID == nil || m.ToLocationID == nil || *m.FromLocationID == *m.ToLocationID {
			return nil, domain.ErrInvalidInput
		}
		return []Contribution{
			{LocationID: *m.FromLocationID, Quantity: m.Quantity.Neg(), Weight: m.Weight.Neg()},
			{LocationID: *m.ToLocationID, Quantity: m.Quantity, Weight: m.Weight},
		}, nil

	case entity.MovementTypeAdjustment:
		loc := fallback(m.ToLocationID, m.FromLocationID)
		if loc == "" {
			return nil, domain.ErrInvalidInput
		}
		// El monto ya viene firmado: negativo representa merma.
		return []Contribution{{LocationID: loc, Quantity: m.Quantity, Weight: m.Weight}}, nil
	}
	return nil, domain.ErrInvalidInput
}

func fallback(primary, secondary *string) string {
	if primary != nil && *primary != "" {
		return *primary
	}
	if secondary != nil && *secondary != "" {
		return *secondary
	}
	return ""
}
