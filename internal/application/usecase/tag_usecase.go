package usecase

import (
	"context"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Joyeria-api/internal/application/dto"
	"github.com/jhoicas/Joyeria-api/internal/domain"
	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/domain/repository"
)

// TagLabelPDFGenerator puerto de la etiqueta imprimible (código de barras).
type TagLabelPDFGenerator interface {
	GenerateTagLabelPDF(ctx context.Context, tag *entity.Tag, item *entity.Item) ([]byte, error)
}

// TagUseCase administra el registro de etiquetas físicas: una cadena única
// en todo el registro, asignada una vez y nunca reciclada.
type TagUseCase struct {
	tagRepo      repository.TagRepository
	itemRepo     repository.ItemRepository
	pdfGenerator TagLabelPDFGenerator
}

// NewTagUseCase construye el caso de uso.
func NewTagUseCase(tagRepo repository.TagRepository, itemRepo repository.ItemRepository, pdfGenerator TagLabelPDFGenerator) *TagUseCase {
	return &TagUseCase{tagRepo: tagRepo, itemRepo: itemRepo, pdfGenerator: pdfGenerator}
}

// Assign asigna una etiqueta a una pieza. Falla con ErrTagInUse si la cadena
// ya fue reclamada por cualquier pieza, activa o histórica.
func (uc *TagUseCase) Assign(in dto.AssignTagRequest, actor string) (*dto.TagResponse, error) {
	tagString := NormalizeTag(in.TagString)
	if tagString == "" || in.ItemID == "" {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrInvalidReference
	}
	// Chequeo temprano; la carrera residual la cierra el índice único
	// (mapeada a ErrTagInUse en el repo).
	existing, err := uc.tagRepo.GetByTagString(tagString)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrTagInUse
	}

	tag := &entity.Tag{
		TagString:  tagString,
		ItemID:     in.ItemID,
		AssignedBy: actor,
		AssignedAt: time.Now().UTC(),
	}
	if err := uc.tagRepo.Create(tag); err != nil {
		return nil, err
	}
	return tagToResponse(tag), nil
}

// Resolve busca la etiqueta; nil si no existe.
func (uc *TagUseCase) Resolve(tagString string) (*dto.TagResponse, error) {
	tag, err := uc.tagRepo.GetByTagString(NormalizeTag(tagString))
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, nil
	}
	return tagToResponse(tag), nil
}

// LabelPDF genera la etiqueta imprimible con código de barras Code-128.
func (uc *TagUseCase) LabelPDF(ctx context.Context, tagString string) ([]byte, error) {
	tag, err := uc.tagRepo.GetByTagString(NormalizeTag(tagString))
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, domain.ErrNotFound
	}
	item, err := uc.itemRepo.GetByID(tag.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrInvalidReference
	}
	return uc.pdfGenerator.GenerateTagLabelPDF(ctx, tag, item)
}

// NormalizeTag normaliza la cadena escaneada (NFKC + trim): el mismo rótulo
// físico leído por lectores distintos no debe burlar la unicidad.
func NormalizeTag(s string) string {
	return strings.TrimSpace(norm.NFKC.String(s))
}

func tagToResponse(tag *entity.Tag) *dto.TagResponse {
	return &dto.TagResponse{
		TagString:  tag.TagString,
		ItemID:     tag.ItemID,
		AssignedBy: tag.AssignedBy,
		AssignedAt: tag.AssignedAt,
	}
}
