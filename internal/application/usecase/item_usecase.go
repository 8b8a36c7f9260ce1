package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Joyeria-api/internal/application/dto"
	"github.com/jhoicas/Joyeria-api/internal/domain"
	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/domain/repository"
)

// ItemUseCase alta y consulta mínimas de piezas. El catálogo completo es de
// otro servicio; el libro solo necesita resolver referencias y mutar estado.
type ItemUseCase struct {
	itemRepo repository.ItemRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(itemRepo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo}
}

// Create registra una pieza nueva. SKU duplicado → ErrDuplicateName.
func (uc *ItemUseCase) Create(in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Weight.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.itemRepo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateName
	}

	now := time.Now().UTC()
	item := &entity.Item{
		ID:         uuid.New().String(),
		SKU:        in.SKU,
		Name:       in.Name,
		Metal:      in.Metal,
		Purity:     in.Purity,
		Weight:     in.Weight,
		WeightUnit: in.WeightUnit,
		Status:     entity.ItemStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if item.WeightUnit == "" {
		item.WeightUnit = "g"
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return itemToResponse(item), nil
}

// GetByID obtiene una pieza; nil si no existe.
func (uc *ItemUseCase) GetByID(id string) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}
	return itemToResponse(item), nil
}

// List lista piezas con paginación.
func (uc *ItemUseCase) List(limit, offset int) (*dto.ItemListResponse, error) {
	list, err := uc.itemRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.ItemListResponse{
		Items: make([]dto.ItemResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, item := range list {
		out.Items = append(out.Items, *itemToResponse(item))
	}
	return out, nil
}

// UpdateStatus la única mutación de pieza permitida desde el libro.
func (uc *ItemUseCase) UpdateStatus(id string, in dto.UpdateItemStatusRequest) error {
	switch in.Status {
	case entity.ItemStatusActive, entity.ItemStatusSold, entity.ItemStatusInactive:
	default:
		return domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}
	return uc.itemRepo.UpdateStatus(id, in.Status)
}

func itemToResponse(item *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:         item.ID,
		SKU:        item.SKU,
		Name:       item.Name,
		Metal:      item.Metal,
		Purity:     item.Purity,
		Weight:     item.Weight,
		WeightUnit: item.WeightUnit,
		Status:     item.Status,
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
}
