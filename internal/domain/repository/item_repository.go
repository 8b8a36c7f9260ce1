package repository

import "github.com/jhoicas/Joyeria-api/internal/domain/entity"

// ItemRepository puerto del catálogo mínimo de piezas. El catálogo completo
// vive en otro servicio; aquí solo lo necesario para resolver referencias.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	GetBySKU(sku string) (*entity.Item, error)
	List(limit, offset int) ([]*entity.Item, error)
	// UpdateStatus es la única mutación de pieza que el libro posee.
	UpdateStatus(id, status string) error
}
