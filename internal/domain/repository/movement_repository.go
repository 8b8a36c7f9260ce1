package repository

import (
	"context"

	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
)

// MovementFilter filtros del libro mayor. ItemID y LocationID son opcionales;
// LocationID coincide contra origen o destino del movimiento.
type MovementFilter struct {
	ItemID     string
	LocationID string
	Limit      int
	Offset     int
}

// MovementRepository puerto del log de movimientos, solo-inserción.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// List devuelve movimientos del más reciente al más antiguo.
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
	// ListAll devuelve el log completo en orden de creación ascendente.
	// Usado por la herramienta de reconciliación para re-derivar balances.
	ListAll(ctx context.Context) ([]*entity.Movement, error)
}
