package repository

import "github.com/jhoicas/Joyeria-api/internal/domain/entity"

// TagRepository puerto del registro de etiquetas físicas. Las etiquetas se
// crean una vez y nunca se reciclan.
type TagRepository interface {
	Create(tag *entity.Tag) error
	GetByTagString(tagString string) (*entity.Tag, error)
	ListByItem(itemID string) ([]*entity.Tag, error)
}
