package repository

import (
	"context"

	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
)

// PriceRepository puerto de la serie de precios de metal, solo-inserción.
type PriceRepository interface {
	Create(snapshot *entity.PriceSnapshot) error
	// LatestByKey devuelve el snapshot más reciente para (metal, pureza),
	// o nil si nunca se ha registrado precio para esa clave.
	LatestByKey(metal, purity string) (*entity.PriceSnapshot, error)
	// ListLatest devuelve el snapshot más reciente de cada clave conocida.
	ListLatest(ctx context.Context) ([]*entity.PriceSnapshot, error)
}
