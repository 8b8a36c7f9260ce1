// Package production orquesta la operación compuesta de producción por BOM:
// N consumos de componentes más una entrada de producto terminado, visible
// como todo-o-nada para los lectores del libro.
package production

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Joyeria-api/internal/application/inventory"
	"github.com/jhoicas/Joyeria-api/internal/domain"
	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/domain/repository"
)

// Ledger es lo que producción necesita del libro: registrar movimientos
// atómicos de a uno. La saga se construye encima.
type Ledger interface {
	RecordMovement(ctx context.Context, input inventory.MovementInput) (string, error)
}

// ProduceUseCase ejecuta la producción como saga: cada paso es un movimiento
// atómico por sí mismo y, ante un fallo parcial, los consumos ya aplicados se
// reversan con movimientos de ajuste compensatorios bajo el mismo ref. Así
// incluso un episodio fallido queda auditable completo en el log.
type ProduceUseCase struct {
	ledger       Ledger
	bomRepo      repository.BOMRepository
	itemRepo     repository.ItemRepository
	locationRepo repository.LocationRepository
}

// NewProduceUseCase construye el caso de uso.
func NewProduceUseCase(
	ledger Ledger,
	bomRepo repository.BOMRepository,
	itemRepo repository.ItemRepository,
	locationRepo repository.LocationRepository,
) *ProduceUseCase {
	return &ProduceUseCase{
		ledger:       ledger,
		bomRepo:      bomRepo,
		itemRepo:     itemRepo,
		locationRepo: locationRepo,
	}
}

// ProduceInput entrada de una orden de producción.
type ProduceInput struct {
	ProductID      string
	Quantity       decimal.Decimal
	ToLocationID   string
	FinishedWeight decimal.Decimal
	Unit           string
	Note           string
	Actor          string
}

// ProduceResult movimientos generados por el episodio de producción.
type ProduceResult struct {
	Ref         string
	MovementIDs []string
}

// Produce consume los componentes del BOM escalados por Quantity desde la
// ubicación de producción y registra la entrada del producto terminado.
// Todas las referencias se resuelven antes del primer movimiento, de modo
// que ErrInvalidReference nunca deja estado parcial.
func (uc *ProduceUseCase) Produce(ctx context.Context, input ProduceInput) (*ProduceResult, error) {
	if input.ProductID == "" || input.ToLocationID == "" || !input.Quantity.IsPositive() {
		return nil, domain.ErrInvalidInput
	}

	bom, err := uc.bomRepo.GetByProduct(input.ProductID)
	if err != nil {
		return nil, err
	}
	if bom == nil || len(bom.Components) == 0 {
		return nil, domain.ErrNotFound
	}

	product, err := uc.itemRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrInvalidReference
	}
	loc, err := uc.locationRepo.GetByID(input.ToLocationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrInvalidReference
	}
	for _, comp := range bom.Components {
		item, err := uc.itemRepo.GetByID(comp.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrInvalidReference
		}
	}

	ref := productionRef(input.ProductID)
	result := &ProduceResult{Ref: ref}

	// Consumos: componentes escalados, asumidos disponibles en la ubicación
	// de producción. Cada RecordMovement es atómico por sí mismo.
	var consumed []appliedConsumption
	for _, comp := range bom.Components {
		qty := comp.Quantity.Mul(input.Quantity)
		wt := comp.Weight.Mul(input.Quantity)
		movID, err := uc.ledger.RecordMovement(ctx, inventory.MovementInput{
			ItemID:         comp.ItemID,
			Type:           entity.MovementTypeOutward,
			Quantity:       qty,
			Weight:         wt,
			Unit:           comp.Unit,
			FromLocationID: &input.ToLocationID,
			Ref:            ref,
			Note:           "consumo de producción: " + input.ProductID,
			Actor:          input.Actor,
		})
		if err != nil {
			return nil, uc.failStep(ctx, err, consumed, input, ref)
		}
		consumed = append(consumed, appliedConsumption{comp: comp, qty: qty, wt: wt})
		result.MovementIDs = append(result.MovementIDs, movID)
	}

	// Entrada del producto terminado.
	movID, err := uc.ledger.RecordMovement(ctx, inventory.MovementInput{
		ItemID:       input.ProductID,
		Type:         entity.MovementTypeInward,
		Quantity:     input.Quantity,
		Weight:       input.FinishedWeight,
		Unit:         input.Unit,
		ToLocationID: &input.ToLocationID,
		Ref:          ref,
		Note:         input.Note,
		Actor:        input.Actor,
	})
	if err != nil {
		return nil, uc.failStep(ctx, err, consumed, input, ref)
	}
	result.MovementIDs = append(result.MovementIDs, movID)
	return result, nil
}

// failStep compensa los consumos ya aplicados y arma el error del episodio.
// Si algún reverso tampoco llega al log, el caller recibe ambos errores y
// puede reintentar la compensación o conciliar contra el ref.
func (uc *ProduceUseCase) failStep(ctx context.Context, stepErr error, consumed []appliedConsumption, input ProduceInput, ref string) error {
	if compErr := uc.compensate(ctx, reversalInputs(consumed, input, ref)); compErr != nil {
		return errors.Join(stepErr, fmt.Errorf("compensación fallida, conciliar ref %s: %w", ref, compErr))
	}
	return stepErr
}

// appliedConsumption un consumo ya registrado, candidato a reverso.
type appliedConsumption struct {
	comp entity.BOMComponent
	qty  decimal.Decimal
	wt   decimal.Decimal
}

// compensate reversa los consumos ya aplicados con ajustes positivos bajo el
// mismo ref. Devuelve el error acumulado de los reversos que no llegaron al
// log: componentes que siguen consumidos sin rastro del intento de reverso.
func (uc *ProduceUseCase) compensate(ctx context.Context, reversals []inventory.MovementInput) error {
	var errs []error
	for _, rev := range reversals {
		// Ajuste positivo: devuelve el componente a la ubicación de
		// producción. No puede fallar por stock insuficiente.
		if _, err := uc.ledger.RecordMovement(ctx, rev); err != nil {
			errs = append(errs, fmt.Errorf("reverso de %s: %w", rev.ItemID, err))
		}
	}
	return errors.Join(errs...)
}

func reversalInputs(consumed []appliedConsumption, input ProduceInput, ref string) []inventory.MovementInput {
	reversals := make([]inventory.MovementInput, 0, len(consumed))
	for _, a := range consumed {
		reversals = append(reversals, inventory.MovementInput{
			ItemID:       a.comp.ItemID,
			Type:         entity.MovementTypeAdjustment,
			Quantity:     a.qty,
			Weight:       a.wt,
			Unit:         a.comp.Unit,
			ToLocationID: &input.ToLocationID,
			Ref:          ref,
			Note:         "reverso de consumo: producción fallida de " + input.ProductID,
			Actor:        input.Actor,
		})
	}
	return reversals
}

// productionRef genera el ref del episodio: identifica todos los movimientos
// (consumos, entrada y eventuales reversos) de una misma orden.
func productionRef(productID string) string {
	return fmt.Sprintf("prod:%s:%s:%s", productID, time.Now().UTC().Format("20060102150405"), uuid.New().String()[:8])
}
