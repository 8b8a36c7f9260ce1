package repository

import "github.com/jhoicas/Joyeria-api/internal/domain/entity"

// BOMRepository puerto de las listas de materiales (una por producto,
// versionada por reemplazo completo).
type BOMRepository interface {
	Upsert(bom *entity.BOM) error
	GetByProduct(productID string) (*entity.BOM, error)
}
