package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Joyeria-api/internal/application/dto"
	"github.com/jhoicas/Joyeria-api/internal/domain"
	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/domain/repository"
)

// LocationUseCase administra el registro de ubicaciones (árbol de sucursales,
// bodegas, cajas fuertes y consignaciones).
type LocationUseCase struct {
	locationRepo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(locationRepo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{locationRepo: locationRepo}
}

// Create crea una ubicación. El padre, si se indica, debe existir; no hay
// chequeo de ciclos porque el padre se asigna una vez y nunca se reparenta.
func (uc *LocationUseCase) Create(in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if in.Name == "" || !entity.ValidLocationType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	if in.ParentID != nil && *in.ParentID != "" {
		parent, err := uc.locationRepo.GetByID(*in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrInvalidReference
		}
	} else {
		in.ParentID = nil
	}
	// La unicidad real la impone el índice único; este chequeo temprano da
	// un error limpio en el caso común sin carrera.
	existing, err := uc.locationRepo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateName
	}

	now := time.Now().UTC()
	loc := &entity.Location{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Type:      in.Type,
		Address:   in.Address,
		ParentID:  in.ParentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.locationRepo.Create(loc); err != nil {
		return nil, err
	}
	return locationToResponse(loc), nil
}

// GetByID obtiene una ubicación; nil si no existe.
func (uc *LocationUseCase) GetByID(id string) (*dto.LocationResponse, error) {
	loc, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, nil
	}
	return locationToResponse(loc), nil
}

// List lista ubicaciones con paginación.
func (uc *LocationUseCase) List(limit, offset int) (*dto.LocationListResponse, error) {
	list, err := uc.locationRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.LocationListResponse{
		Items: make([]dto.LocationResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, loc := range list {
		out.Items = append(out.Items, *locationToResponse(loc))
	}
	return out, nil
}

// Update cambia solo metadatos (nombre, dirección).
func (uc *LocationUseCase) Update(id string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	loc, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	name, address := loc.Name, loc.Address
	if in.Name != nil && *in.Name != "" {
		name = *in.Name
	}
	if in.Address != nil {
		address = *in.Address
	}
	if err := uc.locationRepo.UpdateMetadata(id, name, address); err != nil {
		return nil, err
	}
	loc.Name, loc.Address = name, address
	loc.UpdatedAt = time.Now().UTC()
	return locationToResponse(loc), nil
}

func locationToResponse(loc *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:        loc.ID,
		Name:      loc.Name,
		Type:      loc.Type,
		Address:   loc.Address,
		ParentID:  loc.ParentID,
		CreatedAt: loc.CreatedAt,
		UpdatedAt: loc.UpdatedAt,
	}
}
