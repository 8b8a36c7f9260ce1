package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Joyeria-api/internal/application/inventory"
	"github.com/jhoicas/Joyeria-api/internal/domain"
	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testItemID    = "item-anillo-oro"
	testVitrina   = "loc-vitrina"
	testBodega    = "loc-bodega"
	testActor     = "user-vendedor-1"
	testWeightOne = "4.5" // gramos por unidad en los escenarios
)

type fixture struct {
	uc           *inventory.LedgerUseCase
	movementRepo *memory.MovementRepo
	balanceRepo  *memory.BalanceRepo
	itemRepo     *memory.ItemRepo
	locationRepo *memory.LocationRepo
}

// newFixture arma el caso de uso con repos en memoria y siembra una pieza y
// dos ubicaciones.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	movementRepo := memory.NewMovementRepository()
	balanceRepo := memory.NewBalanceRepository()
	itemRepo := memory.NewItemRepository()
	locationRepo := memory.NewLocationRepository()
	txRunner := memory.NewTxRunner(movementRepo, balanceRepo)

	require.NoError(t, itemRepo.Create(&entity.Item{
		ID: testItemID, SKU: "AN-ORO-001", Name: "Anillo oro 22K",
		Metal: "gold", Purity: "22K",
		Weight: decimal.RequireFromString(testWeightOne), WeightUnit: "g",
		Status: entity.ItemStatusActive,
	}))
	require.NoError(t, locationRepo.Create(&entity.Location{
		ID: testVitrina, Name: "Vitrina principal", Type: entity.LocationTypeBranch,
	}))
	require.NoError(t, locationRepo.Create(&entity.Location{
		ID: testBodega, Name: "Bodega central", Type: entity.LocationTypeWarehouse,
	}))

	return &fixture{
		uc:           inventory.NewLedgerUseCase(txRunner, movementRepo, balanceRepo, itemRepo, locationRepo, "g"),
		movementRepo: movementRepo,
		balanceRepo:  balanceRepo,
		itemRepo:     itemRepo,
		locationRepo: locationRepo,
	}
}

func (f *fixture) record(t *testing.T, input inventory.MovementInput) string {
	t.Helper()
	if input.Actor == "" {
		input.Actor = testActor
	}
	id, err := f.uc.RecordMovement(context.Background(), input)
	require.NoError(t, err)
	require.NotEmpty(t, id)
	return id
}

func (f *fixture) balance(t *testing.T, itemID, locationID string) *entity.Balance {
	t.Helper()
	bal, err := f.balanceRepo.Get(itemID, locationID)
	require.NoError(t, err)
	return bal
}

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func loc(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Validación de entrada
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_EntradaInvalida(t *testing.T) {
	f := newFixture(t)
	cases := []struct {
		name  string
		input inventory.MovementInput
	}{
		{"sin pieza", inventory.MovementInput{Type: entity.MovementTypeInward, Quantity: qty("1"), ToLocationID: loc(testVitrina)}},
		{"tipo desconocido", inventory.MovementInput{ItemID: testItemID, Type: "teleport", Quantity: qty("1"), ToLocationID: loc(testVitrina)}},
		{"cantidad y peso cero", inventory.MovementInput{ItemID: testItemID, Type: entity.MovementTypeInward, ToLocationID: loc(testVitrina)}},
		{"inward negativo", inventory.MovementInput{ItemID: testItemID, Type: entity.MovementTypeInward, Quantity: qty("-1"), ToLocationID: loc(testVitrina)}},
		{"transfer sin origen", inventory.MovementInput{ItemID: testItemID, Type: entity.MovementTypeTransfer, Quantity: qty("1"), ToLocationID: loc(testVitrina)}},
		{"transfer misma ubicación", inventory.MovementInput{ItemID: testItemID, Type: entity.MovementTypeTransfer, Quantity: qty("1"), FromLocationID: loc(testVitrina), ToLocationID: loc(testVitrina)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.input.Actor = testActor
			_, err := f.uc.RecordMovement(context.Background(), tc.input)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	// Nada de lo anterior debe haber tocado el log.
	movements, err := f.movementRepo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, movements, "entradas inválidas no deben dejar movimientos")
}

func TestRecordMovement_ReferenciaInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.RecordMovement(context.Background(), inventory.MovementInput{
		ItemID: "item-fantasma", Type: entity.MovementTypeInward,
		Quantity: qty("1"), ToLocationID: loc(testVitrina), Actor: testActor,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidReference, "pieza inexistente")

	_, err = f.uc.RecordMovement(context.Background(), inventory.MovementInput{
		ItemID: testItemID, Type: entity.MovementTypeInward,
		Quantity: qty("1"), ToLocationID: loc("loc-fantasma"), Actor: testActor,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidReference, "ubicación inexistente")

	movements, err := f.movementRepo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, movements, "referencias inválidas no deben dejar movimientos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario guía: entrada 5, salida 2 → balance 3 y libro del más reciente
// al más antiguo
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_EntradaYSalida(t *testing.T) {
	f := newFixture(t)

	inwardID := f.record(t, inventory.MovementInput{
		ItemID: testItemID, Type: entity.MovementTypeInward,
		Quantity: qty("5"), Weight: qty("22.5"), ToLocationID: loc(testVitrina),
		Ref: "po:compra-991",
	})
	outwardID := f.record(t, inventory.MovementInput{
		ItemID: testItemID, Type: entity.MovementTypeOutward,
		Quantity: qty("2"), Weight: qty("9"), FromLocationID: loc(testVitrina),
		Ref: "inv:factura-17",
	})

	bal := f.balance(t, testItemID, testVitrina)
	assert.True(t, bal.Quantity.Equal(qty("3")), "5 entradas - 2 salidas = 3, quedó %s", bal.Quantity)
	assert.True(t, bal.Weight.Equal(qty("13.5")))
	assert.Equal(t, "g", bal.Unit)

	movements, err := f.uc.GetLedger(context.Background(), testItemID, "", 20, 0)
	require.NoError(t, err)
	require.Len(t, movements, 2)
	assert.Equal(t, outwardID, movements[0].ID, "el libro se sirve del más reciente al más antiguo")
	assert.Equal(t, inwardID, movements[1].ID)
	assert.Equal(t, testActor, movements[0].CreatedBy)
	assert.Equal(t, "inv:factura-17", movements[0].Ref)
}

func TestRecordMovement_UnidadPorDefecto(t *testing.T) {
	f := newFixture(t)
	id := f.record(t, inventory.MovementInput{
		ItemID: testItemID, Type: entity.MovementTypeInward,
		Quantity: qty("1"), Weight: qty("4.5"), ToLocationID: loc(testVitrina),
	})
	mov, err := f.movementRepo.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, mov)
	assert.Equal(t, "g", mov.Unit, "sin unidad explícita aplica la del config")
}

// ──────────────────────────────────────────────────────────────────────────────
// Sobregiro
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_SalidaSobregirada_Rechazada(t *testing.T) {
	f := newFixture(t)
	f.record(t, inventory.MovementInput{
		ItemID: testItemID, Type: entity.MovementTypeInward,
		Quantity: qty("3"), Weight: qty("13.5"), ToLocationID: loc(testVitrina),
	})

	_, err := f.uc.RecordMovement(context.Background(), inventory.MovementInput{
		ItemID: testItemID, Type: entity.MovementTypeOutward,
		Quantity: qty("4"), Weight: qty("18"), FromLocationID: loc(testVitrina),
		Actor: testActor,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El rechazo es atómico: ni balance tocado ni movimiento en el log.
	bal := f.balance(t, testItemID, testVitrina)
	assert.True(t, bal.Quantity.Equal(qty("3")), "el balance no debe cambiar tras un rechazo")
	movements, err := f.movementRepo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, movements, 1)
}

func TestRecordMovement_SobregiroDePeso_Rechazado(t *testing.T) {
	f := newFixture(t)
	f.record(t, inventory.MovementInput{
		ItemID: testItemID, Type: entity.MovementTypeInward,
		Quantity: qty("5"), Weight: qty("10"), ToLocationID: loc(testVitrina),
	})

	// Cantidad alcanza pero el peso no: también cuenta como sobregiro.
	_, err := f.uc.RecordMovement(context.Background(), inventory.MovementInput{
		ItemID: testItemID, Type: entity.MovementTypeOutward,
		Quantity: qty("2"), Weight: qty("11"), FromLocationID: loc(testVitrina),
		Actor: testActor,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestRecordMovement_AjusteNegativo_Permitido(t *testing.T) {
	f := newFixture(t)

	// La merma puede dejar el balance en negativo: el ajuste es el
	// instrumento de corrección y no se recorta.
	f.record(t, inventory.MovementInput{
		ItemID: testItemID, Type: entity.MovementTypeAdjustment,
		Quantity: qty("-2"), Weight: qty("-9"), ToLocationID: loc(testVitrina),
		Note: "conteo físico: faltan dos anillos",
	})

	bal := f.balance(t, testItemID, testVitrina)
	assert.True(t, bal.Quantity.Equal(qty("-2")), "el ajuste firmado se aplica tal cual")
	assert.True(t, bal.Weight.Equal(qty("-9")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Transferencias
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_TransferenciaMueveEntreUbicaciones(t *testing.T) {
	f := newFixture(t)
	f.record(t, inventory.MovementInput{
		ItemID: testItemID, Type: entity.MovementTypeInward,
		Quantity: qty("5"), Weight: qty("22.5"), ToLocationID: loc(testBodega),
	})

	f.record(t, inventory.MovementInput{
		ItemID: testItemID, Type: entity.MovementTypeTransfer,
		Quantity: qty("2"), Weight: qty("9"),
		FromLocationID: loc(testBodega), ToLocationID: loc(testVitrina),
		Ref: "tr:traslado-44",
	})

	origen := f.balance(t, testItemID, testBodega)
	destino := f.balance(t, testItemID, testVitrina)
	assert.True(t, origen.Quantity.Equal(qty("3")))
	assert.True(t, destino.Quantity.Equal(qty("2")))

	// Conservación: el total del sistema no cambia con un traslado.
	assert.True(t, origen.Quantity.Add(destino.Quantity).Equal(qty("5")))
	assert.True(t, origen.Weight.Add(destino.Weight).Equal(qty("22.5")))

	// Un traslado es UNA entrada del log, visible desde ambas ubicaciones.
	fromView, err := f.uc.GetLedger(context.Background(), "", testBodega, 20, 0)
	require.NoError(t, err)
	toView, err := f.uc.GetLedger(context.Background(), "", testVitrina, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, fromView[0].ID, toView[0].ID, "el mismo registro de traslado se ve desde origen y destino")
}

func TestRecordMovement_TransferenciaSobregirada_NoDejaEstadoParcial(t *testing.T) {
	f := newFixture(t)
	f.record(t, inventory.MovementInput{
		ItemID: testItemID, Type: entity.MovementTypeInward,
		Quantity: qty("1"), Weight: qty("4.5"), ToLocationID: loc(testBodega),
	})

	_, err := f.uc.RecordMovement(context.Background(), inventory.MovementInput{
		ItemID: testItemID, Type: entity.MovementTypeTransfer,
		Quantity: qty("3"), Weight: qty("13.5"),
		FromLocationID: loc(testBodega), ToLocationID: loc(testVitrina),
		Actor: testActor,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Ninguna de las dos mitades del traslado debe haberse aplicado.
	assert.True(t, f.balance(t, testItemID, testBodega).Quantity.Equal(qty("1")))
	assert.True(t, f.balance(t, testItemID, testVitrina).Quantity.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Conservación: replay del log == balances materializados
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordMovement_BalancesIgualesAlReplayDelLog(t *testing.T) {
	f := newFixture(t)

	f.record(t, inventory.MovementInput{ItemID: testItemID, Type: entity.MovementTypeInward, Quantity: qty("10"), Weight: qty("45"), ToLocationID: loc(testBodega)})
	f.record(t, inventory.MovementInput{ItemID: testItemID, Type: entity.MovementTypeTransfer, Quantity: qty("4"), Weight: qty("18"), FromLocationID: loc(testBodega), ToLocationID: loc(testVitrina)})
	f.record(t, inventory.MovementInput{ItemID: testItemID, Type: entity.MovementTypeOutward, Quantity: qty("1"), Weight: qty("4.5"), FromLocationID: loc(testVitrina)})
	f.record(t, inventory.MovementInput{ItemID: testItemID, Type: entity.MovementTypeAdjustment, Quantity: qty("-1"), Weight: qty("-4.5"), ToLocationID: loc(testBodega)})

	// La reconciliación no debe encontrar ninguna desviación.
	reconciler := inventory.NewReconcileUseCase(f.movementRepo, f.balanceRepo)
	drifts, err := reconciler.Reconcile(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, drifts, "los balances materializados deben coincidir con el replay del log")

	assert.True(t, f.balance(t, testItemID, testBodega).Quantity.Equal(qty("5")))
	assert.True(t, f.balance(t, testItemID, testVitrina).Quantity.Equal(qty("3")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Reconciliación con deriva inducida
// ──────────────────────────────────────────────────────────────────────────────

func TestReconcile_DetectaYReparaDeriva(t *testing.T) {
	f := newFixture(t)
	f.record(t, inventory.MovementInput{
		ItemID: testItemID, Type: entity.MovementTypeInward,
		Quantity: qty("5"), Weight: qty("22.5"), ToLocationID: loc(testVitrina),
	})

	// Deriva inducida: alguien escribió el balance por fuera del proyector.
	require.NoError(t, f.balanceRepo.Upsert(&entity.Balance{
		ItemID: testItemID, LocationID: testVitrina,
		Quantity: qty("9"), Weight: qty("40"), Unit: "g", UpdatedAt: time.Now(),
	}))

	reconciler := inventory.NewReconcileUseCase(f.movementRepo, f.balanceRepo)
	drifts, err := reconciler.Reconcile(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, drifts, 1)
	assert.True(t, drifts[0].StoredQty.Equal(qty("9")))
	assert.True(t, drifts[0].ReplayedQty.Equal(qty("5")))

	// Con repair el balance vuelve al valor re-derivado del log.
	_, err = reconciler.Reconcile(context.Background(), true)
	require.NoError(t, err)
	assert.True(t, f.balance(t, testItemID, testVitrina).Quantity.Equal(qty("5")))

	drifts, err = reconciler.Reconcile(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, drifts, "tras reparar no debe quedar deriva")
}
