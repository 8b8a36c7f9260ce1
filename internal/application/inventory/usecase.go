package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Joyeria-api/internal/domain"
	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/domain/ledger"
	"github.com/jhoicas/Joyeria-api/internal/domain/repository"
)

// LedgerUseCase registra movimientos de inventario de forma transaccional
// (inward, outward, transfer, adjustment) y sirve las lecturas del libro.
// El append del movimiento y su(s) proyección(es) de balance ocurren en una
// sola transacción con bloqueo de fila (SELECT FOR UPDATE).
type LedgerUseCase struct {
	txRunner     TxRunner
	movementRepo repository.MovementRepository
	balanceRepo  repository.BalanceRepository
	itemRepo     repository.ItemRepository
	locationRepo repository.LocationRepository
	defaultUnit  string
}

// NewLedgerUseCase construye el caso de uso. movementRepo y balanceRepo aquí
// son los atados al pool (solo lecturas); las escrituras pasan por txRunner.
func NewLedgerUseCase(
	txRunner TxRunner,
	movementRepo repository.MovementRepository,
	balanceRepo repository.BalanceRepository,
	itemRepo repository.ItemRepository,
	locationRepo repository.LocationRepository,
	defaultUnit string,
) *LedgerUseCase {
	if defaultUnit == "" {
		defaultUnit = "g"
	}
	return &LedgerUseCase{
		txRunner:     txRunner,
		movementRepo: movementRepo,
		balanceRepo:  balanceRepo,
		itemRepo:     itemRepo,
		locationRepo: locationRepo,
		defaultUnit:  defaultUnit,
	}
}

// MovementInput entrada para registrar un movimiento.
// Quantity firmado solo en adjustment (negativo = merma); en los demás tipos
// el signo lo aporta la regla del libro, no el caller.
type MovementInput struct {
	ItemID         string
	Type           string
	Quantity       decimal.Decimal
	Weight         decimal.Decimal
	Unit           string
	FromLocationID *string
	ToLocationID   *string
	Ref            string
	Note           string
	Actor          string
}

// RecordMovement valida la entrada, resuelve referencias y aplica el
// movimiento con su proyección de balance en una transacción. Devuelve el ID
// del movimiento registrado.
func (uc *LedgerUseCase) RecordMovement(ctx context.Context, input MovementInput) (string, error) {
	if err := uc.validate(input); err != nil {
		return "", err
	}
	// Referencias se resuelven antes de abrir la transacción: un error de
	// referencia nunca deja movimientos registrados.
	if err := uc.resolveRefs(input); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	mov := &entity.Movement{
		ID:             uuid.New().String(),
		ItemID:         input.ItemID,
		Type:           input.Type,
		Quantity:       input.Quantity,
		Weight:         input.Weight,
		Unit:           unitOrDefault(input.Unit, uc.defaultUnit),
		FromLocationID: normalizeLoc(input.FromLocationID),
		ToLocationID:   normalizeLoc(input.ToLocationID),
		Ref:            input.Ref,
		Note:           input.Note,
		CreatedBy:      input.Actor,
		CreatedAt:      now,
	}

	contribs, err := ledger.Contributions(mov)
	if err != nil {
		return "", err
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		balanceRepo repository.BalanceRepository,
	) error {
		for _, c := range contribs {
			// Bloquea la fila del par (pieza, ubicación); un par nunca
			// tocado se lee como cero y no bloquea nada, por eso la
			// escritura es un delta incremental y no un valor absoluto.
			bal, err := balanceRepo.GetForUpdate(mov.ItemID, c.LocationID)
			if err != nil {
				return err
			}
			newQty := bal.Quantity.Add(c.Quantity)
			newWeight := bal.Weight.Add(c.Weight)
			if overdrawGuarded(mov.Type) && (newQty.IsNegative() || newWeight.IsNegative()) {
				return domain.ErrInsufficientStock
			}
			if err := balanceRepo.ApplyDelta(mov.ItemID, c.LocationID, c.Quantity, c.Weight, mov.Unit); err != nil {
				return err
			}
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return "", err
	}
	return mov.ID, nil
}

// validate aplica las precondiciones por tipo sin tocar la BD.
func (uc *LedgerUseCase) validate(input MovementInput) error {
	if input.ItemID == "" || !entity.ValidMovementType(input.Type) {
		return domain.ErrInvalidInput
	}
	// Un movimiento que no mueve nada es ruido en un log de auditoría.
	if input.Quantity.IsZero() && input.Weight.IsZero() {
		return domain.ErrInvalidInput
	}
	switch input.Type {
	case entity.MovementTypeTransfer:
		from, to := normalizeLoc(input.FromLocationID), normalizeLoc(input.ToLocationID)
		if from == nil || to == nil || *from == *to {
			return domain.ErrInvalidInput
		}
		if input.Quantity.IsNegative() || input.Weight.IsNegative() {
			return domain.ErrInvalidInput
		}
	case entity.MovementTypeAdjustment:
		// Monto firmado permitido: negativo representa merma.
	default:
		if input.Quantity.IsNegative() || input.Weight.IsNegative() {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

// resolveRefs verifica que la pieza y las ubicaciones referenciadas existan.
func (uc *LedgerUseCase) resolveRefs(input MovementInput) error {
	item, err := uc.itemRepo.GetByID(input.ItemID)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrInvalidReference
	}
	for _, locID := range []*string{normalizeLoc(input.FromLocationID), normalizeLoc(input.ToLocationID)} {
		if locID == nil {
			continue
		}
		loc, err := uc.locationRepo.GetByID(*locID)
		if err != nil {
			return err
		}
		if loc == nil {
			return domain.ErrInvalidReference
		}
	}
	return nil
}

// GetLedger devuelve los movimientos filtrados por pieza y/o ubicación, del
// más reciente al más antiguo. El filtro de ubicación casa origen o destino.
func (uc *LedgerUseCase) GetLedger(ctx context.Context, itemID, locationID string, limit, offset int) ([]*entity.Movement, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return uc.movementRepo.List(ctx, repository.MovementFilter{
		ItemID:     itemID,
		LocationID: locationID,
		Limit:      limit,
		Offset:     offset,
	})
}

// GetBalances devuelve los balances materializados del filtro pedido.
func (uc *LedgerUseCase) GetBalances(ctx context.Context, itemID, locationID string) ([]*entity.Balance, error) {
	return uc.balanceRepo.List(ctx, itemID, locationID)
}

// overdrawGuarded indica si el tipo rechaza dejar el balance en negativo.
// adjustment queda por fuera: es el instrumento de corrección y recortarlo
// rompería la invariante balance == Σ contribuciones.
func overdrawGuarded(movType string) bool {
	return movType == entity.MovementTypeOutward || movType == entity.MovementTypeTransfer
}

func unitOrDefault(unit, def string) string {
	if unit == "" {
		return def
	}
	return unit
}

// normalizeLoc convierte punteros a cadena vacía en nil.
func normalizeLoc(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}
