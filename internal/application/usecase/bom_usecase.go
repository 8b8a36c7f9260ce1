package usecase

import (
	"time"

	"github.com/jhoicas/Joyeria-api/internal/application/dto"
	"github.com/jhoicas/Joyeria-api/internal/domain"
	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/domain/repository"
)

// BOMUseCase administra las recetas de producto terminado. Versionado por
// reemplazo completo del documento.
type BOMUseCase struct {
	bomRepo  repository.BOMRepository
	itemRepo repository.ItemRepository
}

// NewBOMUseCase construye el caso de uso.
func NewBOMUseCase(bomRepo repository.BOMRepository, itemRepo repository.ItemRepository) *BOMUseCase {
	return &BOMUseCase{bomRepo: bomRepo, itemRepo: itemRepo}
}

// Upsert reemplaza la receta completa de un producto. Producto y todos los
// componentes deben existir en el catálogo.
func (uc *BOMUseCase) Upsert(productID string, in dto.UpsertBOMRequest, actor string) (*dto.BOMResponse, error) {
	if productID == "" || len(in.Components) == 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.itemRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrInvalidReference
	}

	components := make([]entity.BOMComponent, 0, len(in.Components))
	for _, c := range in.Components {
		if c.ItemID == "" || (!c.Quantity.IsPositive() && !c.Weight.IsPositive()) {
			return nil, domain.ErrInvalidInput
		}
		item, err := uc.itemRepo.GetByID(c.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrInvalidReference
		}
		components = append(components, entity.BOMComponent{
			ItemID:   c.ItemID,
			Quantity: c.Quantity,
			Weight:   c.Weight,
			Unit:     c.Unit,
		})
	}

	bom := &entity.BOM{
		ProductID:  productID,
		Components: components,
		UpdatedBy:  actor,
		UpdatedAt:  time.Now().UTC(),
	}
	if err := uc.bomRepo.Upsert(bom); err != nil {
		return nil, err
	}
	return bomToResponse(bom), nil
}

// GetByProduct obtiene la receta vigente; nil si no existe.
func (uc *BOMUseCase) GetByProduct(productID string) (*dto.BOMResponse, error) {
	bom, err := uc.bomRepo.GetByProduct(productID)
	if err != nil {
		return nil, err
	}
	if bom == nil {
		return nil, nil
	}
	return bomToResponse(bom), nil
}

func bomToResponse(bom *entity.BOM) *dto.BOMResponse {
	out := &dto.BOMResponse{
		ProductID:  bom.ProductID,
		Components: make([]dto.BOMComponentDTO, 0, len(bom.Components)),
		UpdatedBy:  bom.UpdatedBy,
		UpdatedAt:  bom.UpdatedAt,
	}
	for _, c := range bom.Components {
		out.Components = append(out.Components, dto.BOMComponentDTO{
			ItemID:   c.ItemID,
			Quantity: c.Quantity,
			Weight:   c.Weight,
			Unit:     c.Unit,
		})
	}
	return out
}
