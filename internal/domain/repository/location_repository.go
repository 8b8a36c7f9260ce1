package repository

import "github.com/jhoicas/Joyeria-api/internal/domain/entity"

// LocationRepository puerto del registro de ubicaciones.
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	GetByName(name string) (*entity.Location, error)
	List(limit, offset int) ([]*entity.Location, error)
	// UpdateMetadata solo toca nombre y dirección; tipo y padre son inmutables.
	UpdateMetadata(id, name, address string) error
}
