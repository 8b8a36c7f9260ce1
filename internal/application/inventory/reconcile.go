package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/domain/ledger"
	"github.com/jhoicas/Joyeria-api/internal/domain/repository"
)

// Drift una discrepancia entre el balance almacenado y el re-derivado del
// log completo de movimientos.
type Drift struct {
	ItemID         string
	LocationID     string
	StoredQty      decimal.Decimal
	ReplayedQty    decimal.Decimal
	StoredWeight   decimal.Decimal
	ReplayedWeight decimal.Decimal
}

// ReconcileUseCase re-deriva los balances reproduciendo el log completo y
// los compara contra los almacenados. Es la herramienta de reparación que
// respalda la invariante de conservación: la proyección siempre debe poder
// reconstruirse desde la fuente de verdad.
type ReconcileUseCase struct {
	movementRepo repository.MovementRepository
	balanceRepo  repository.BalanceRepository
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(movementRepo repository.MovementRepository, balanceRepo repository.BalanceRepository) *ReconcileUseCase {
	return &ReconcileUseCase{movementRepo: movementRepo, balanceRepo: balanceRepo}
}

type pairKey struct {
	itemID     string
	locationID string
}

type replayed struct {
	qty    decimal.Decimal
	weight decimal.Decimal
	unit   string
}

// Reconcile reproduce el log y devuelve las discrepancias encontradas.
// Con repair=true, reescribe cada balance desviado al valor re-derivado.
func (uc *ReconcileUseCase) Reconcile(ctx context.Context, repair bool) ([]Drift, error) {
	movements, err := uc.movementRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	replay := make(map[pairKey]*replayed)
	for _, mov := range movements {
		contribs, err := ledger.Contributions(mov)
		if err != nil {
			// Un movimiento histórico que no produce contribuciones no
			// rompe la reconciliación: se deja en el log y se sigue.
			continue
		}
		for _, c := range contribs {
			key := pairKey{itemID: mov.ItemID, locationID: c.LocationID}
			r, ok := replay[key]
			if !ok {
				r = &replayed{}
				replay[key] = r
			}
			r.qty = r.qty.Add(c.Quantity)
			r.weight = r.weight.Add(c.Weight)
			r.unit = mov.Unit
		}
	}

	stored, err := uc.balanceRepo.List(ctx, "", "")
	if err != nil {
		return nil, err
	}
	storedByKey := make(map[pairKey]*entity.Balance, len(stored))
	for _, b := range stored {
		storedByKey[pairKey{itemID: b.ItemID, locationID: b.LocationID}] = b
	}

	var drifts []Drift
	for key, r := range replay {
		b := storedByKey[pairKey{itemID: key.itemID, locationID: key.locationID}]
		storedQty, storedWeight := decimal.Zero, decimal.Zero
		if b != nil {
			storedQty, storedWeight = b.Quantity, b.Weight
		}
		if storedQty.Equal(r.qty) && storedWeight.Equal(r.weight) {
			continue
		}
		drifts = append(drifts, Drift{
			ItemID:         key.itemID,
			LocationID:     key.locationID,
			StoredQty:      storedQty,
			ReplayedQty:    r.qty,
			StoredWeight:   storedWeight,
			ReplayedWeight: r.weight,
		})
		if repair {
			if err := uc.balanceRepo.Upsert(&entity.Balance{
				ItemID:     key.itemID,
				LocationID: key.locationID,
				Quantity:   r.qty,
				Weight:     r.weight,
				Unit:       r.unit,
				UpdatedAt:  time.Now().UTC(),
			}); err != nil {
				return drifts, err
			}
		}
	}

	// Filas almacenadas sin ningún movimiento que las respalde.
	for key, b := range storedByKey {
		if _, ok := replay[key]; ok {
			continue
		}
		if b.Quantity.IsZero() && b.Weight.IsZero() {
			continue
		}
		drifts = append(drifts, Drift{
			ItemID:       key.itemID,
			LocationID:   key.locationID,
			StoredQty:    b.Quantity,
			StoredWeight: b.Weight,
		})
		if repair {
			if err := uc.balanceRepo.Upsert(&entity.Balance{
				ItemID:     key.itemID,
				LocationID: key.locationID,
				Quantity:   decimal.Zero,
				Weight:     decimal.Zero,
				Unit:       b.Unit,
				UpdatedAt:  time.Now().UTC(),
			}); err != nil {
				return drifts, err
			}
		}
	}
	return drifts, nil
}
