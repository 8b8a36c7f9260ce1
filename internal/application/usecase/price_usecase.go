package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Joyeria-api/internal/application/dto"
	"github.com/jhoicas/Joyeria-api/internal/domain"
	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/domain/repository"
)

// PriceUseCase ingesta de snapshots del feed de precios y lectura del último
// punto por clave. La serie es solo-inserción: las correcciones son
// snapshots nuevos.
type PriceUseCase struct {
	priceRepo       repository.PriceRepository
	defaultCurrency string
}

// NewPriceUseCase construye el caso de uso.
func NewPriceUseCase(priceRepo repository.PriceRepository, defaultCurrency string) *PriceUseCase {
	if defaultCurrency == "" {
		defaultCurrency = "INR"
	}
	return &PriceUseCase{priceRepo: priceRepo, defaultCurrency: defaultCurrency}
}

// Ingest registra un punto de precio.
func (uc *PriceUseCase) Ingest(in dto.CreatePriceSnapshotRequest) (*dto.PriceSnapshotResponse, error) {
	if in.Metal == "" || in.Purity == "" || !in.Rate.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	snap := &entity.PriceSnapshot{
		ID:       uuid.New().String(),
		Metal:    in.Metal,
		Purity:   in.Purity,
		Rate:     in.Rate,
		Currency: in.Currency,
		TakenAt:  time.Now().UTC(),
	}
	if snap.Currency == "" {
		snap.Currency = uc.defaultCurrency
	}
	if err := uc.priceRepo.Create(snap); err != nil {
		return nil, err
	}
	return priceToResponse(snap), nil
}

// Latest devuelve el último snapshot de cada clave (metal, pureza).
func (uc *PriceUseCase) Latest(ctx context.Context) (*dto.LatestPricesResponse, error) {
	list, err := uc.priceRepo.ListLatest(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.LatestPricesResponse{Prices: make([]dto.PriceSnapshotResponse, 0, len(list))}
	for _, snap := range list {
		out.Prices = append(out.Prices, *priceToResponse(snap))
	}
	return out, nil
}

func priceToResponse(snap *entity.PriceSnapshot) *dto.PriceSnapshotResponse {
	return &dto.PriceSnapshotResponse{
		ID:       snap.ID,
		Metal:    snap.Metal,
		Purity:   snap.Purity,
		Rate:     snap.Rate,
		Currency: snap.Currency,
		TakenAt:  snap.TakenAt,
	}
}
