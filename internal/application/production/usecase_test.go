package production_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Joyeria-api/internal/application/inventory"
	"github.com/jhoicas/Joyeria-api/internal/application/production"
	"github.com/jhoicas/Joyeria-api/internal/domain"
	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	prodAnillo   = "item-anillo-terminado"
	compOro      = "item-oro-granalla"
	compPiedra   = "item-circon"
	taller       = "loc-taller"
	prodActor    = "user-orfebre-1"
)

type fixture struct {
	uc           *production.ProduceUseCase
	ledger       *inventory.LedgerUseCase
	movementRepo *memory.MovementRepo
	balanceRepo  *memory.BalanceRepo
	bomRepo      *memory.BOMRepo
	itemRepo     *memory.ItemRepo
	locationRepo *memory.LocationRepo
}

// newFixture arma la saga de producción sobre el libro real con repos en
// memoria: producto terminado, dos componentes, taller y la receta
// 2 granallas de oro + 1 circón por anillo.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	movementRepo := memory.NewMovementRepository()
	balanceRepo := memory.NewBalanceRepository()
	itemRepo := memory.NewItemRepository()
	locationRepo := memory.NewLocationRepository()
	bomRepo := memory.NewBOMRepository()
	txRunner := memory.NewTxRunner(movementRepo, balanceRepo)
	ledger := inventory.NewLedgerUseCase(txRunner, movementRepo, balanceRepo, itemRepo, locationRepo, "g")

	for _, item := range []*entity.Item{
		{ID: prodAnillo, SKU: "AN-TERM-001", Name: "Anillo solitario", Metal: "gold", Purity: "18K", Status: entity.ItemStatusActive},
		{ID: compOro, SKU: "MP-ORO-18K", Name: "Granalla oro 18K", Metal: "gold", Purity: "18K", Status: entity.ItemStatusActive},
		{ID: compPiedra, SKU: "MP-CIRCON", Name: "Circón 3mm", Status: entity.ItemStatusActive},
	} {
		require.NoError(t, itemRepo.Create(item))
	}
	require.NoError(t, locationRepo.Create(&entity.Location{
		ID: taller, Name: "Taller de producción", Type: entity.LocationTypeWarehouse,
	}))
	require.NoError(t, bomRepo.Upsert(&entity.BOM{
		ProductID: prodAnillo,
		Components: []entity.BOMComponent{
			{ItemID: compOro, Quantity: qty("2"), Weight: qty("3"), Unit: "g"},
			{ItemID: compPiedra, Quantity: qty("1"), Weight: qty("0.1"), Unit: "g"},
		},
	}))

	return &fixture{
		uc:           production.NewProduceUseCase(ledger, bomRepo, itemRepo, locationRepo),
		ledger:       ledger,
		movementRepo: movementRepo,
		balanceRepo:  balanceRepo,
		bomRepo:      bomRepo,
		itemRepo:     itemRepo,
		locationRepo: locationRepo,
	}
}

// seed deja stock del componente en el taller.
func (f *fixture) seed(t *testing.T, itemID string, quantity, weight string) {
	t.Helper()
	locID := taller
	_, err := f.ledger.RecordMovement(context.Background(), inventory.MovementInput{
		ItemID: itemID, Type: entity.MovementTypeInward,
		Quantity: qty(quantity), Weight: qty(weight),
		ToLocationID: &locID, Actor: prodActor, Ref: "po:abastecimiento",
	})
	require.NoError(t, err)
}

func (f *fixture) balanceQty(t *testing.T, itemID string) decimal.Decimal {
	t.Helper()
	bal, err := f.balanceRepo.Get(itemID, taller)
	require.NoError(t, err)
	return bal.Quantity
}

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Camino feliz: consumo escalado + entrada del terminado
// ──────────────────────────────────────────────────────────────────────────────

func TestProduce_ConsumeEscaladoYProduce(t *testing.T) {
	f := newFixture(t)
	f.seed(t, compOro, "10", "15")
	f.seed(t, compPiedra, "5", "0.5")

	result, err := f.uc.Produce(context.Background(), production.ProduceInput{
		ProductID:      prodAnillo,
		Quantity:       qty("3"),
		ToLocationID:   taller,
		FinishedWeight: qty("9.3"),
		Unit:           "g",
		Actor:          prodActor,
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	// Receta 2 oro + 1 circón, escalada por 3: consume 6 y 3.
	assert.True(t, f.balanceQty(t, compOro).Equal(qty("4")), "10 - 2*3 = 4")
	assert.True(t, f.balanceQty(t, compPiedra).Equal(qty("2")), "5 - 1*3 = 2")
	assert.True(t, f.balanceQty(t, prodAnillo).Equal(qty("3")), "entran 3 anillos terminados")

	// Dos consumos + una entrada, todos bajo el mismo ref del episodio.
	require.Len(t, result.MovementIDs, 3)
	assert.True(t, strings.HasPrefix(result.Ref, "prod:"+prodAnillo+":"))
	movements, err := f.movementRepo.ListAll(context.Background())
	require.NoError(t, err)
	var withRef int
	for _, m := range movements {
		if m.Ref == result.Ref {
			withRef++
		}
	}
	assert.Equal(t, 3, withRef)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación y referencias
// ──────────────────────────────────────────────────────────────────────────────

func TestProduce_SinBOM_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Produce(context.Background(), production.ProduceInput{
		ProductID: compOro, Quantity: qty("1"), ToLocationID: taller, Actor: prodActor,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound, "producir sin receta definida debe fallar")
}

func TestProduce_CantidadNoPositiva_Rechazada(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Produce(context.Background(), production.ProduceInput{
		ProductID: prodAnillo, Quantity: qty("0"), ToLocationID: taller, Actor: prodActor,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProduce_UbicacionInexistente_SinEstadoParcial(t *testing.T) {
	f := newFixture(t)
	f.seed(t, compOro, "10", "15")

	_, err := f.uc.Produce(context.Background(), production.ProduceInput{
		ProductID: prodAnillo, Quantity: qty("1"), ToLocationID: "loc-fantasma", Actor: prodActor,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidReference)

	// Las referencias se resuelven antes del primer movimiento: el log solo
	// tiene el abastecimiento inicial.
	movements, listErr := f.movementRepo.ListAll(context.Background())
	require.NoError(t, listErr)
	assert.Len(t, movements, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Compensación: fallo a mitad de episodio reversa los consumos aplicados
// ──────────────────────────────────────────────────────────────────────────────

func TestProduce_FalloIntermedio_CompensaConsumosYDejaRastro(t *testing.T) {
	f := newFixture(t)
	// Oro alcanza, circón no: el segundo consumo falla por sobregiro.
	f.seed(t, compOro, "10", "15")
	f.seed(t, compPiedra, "1", "0.1")

	_, err := f.uc.Produce(context.Background(), production.ProduceInput{
		ProductID:      prodAnillo,
		Quantity:       qty("3"),
		ToLocationID:   taller,
		FinishedWeight: qty("9.3"),
		Actor:          prodActor,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock, "el caller recibe el error del paso que falló")

	// El reverso devolvió el oro consumido; nada se produjo.
	assert.True(t, f.balanceQty(t, compOro).Equal(qty("10")), "el consumo de oro debe quedar reversado")
	assert.True(t, f.balanceQty(t, compPiedra).Equal(qty("1")))
	assert.True(t, f.balanceQty(t, prodAnillo).IsZero())

	// Auditabilidad: el episodio fallido queda completo en el log
	// (consumo + reverso bajo el mismo ref), no se borra nada.
	movements, listErr := f.movementRepo.ListAll(context.Background())
	require.NoError(t, listErr)
	var consumo, reverso *entity.Movement
	for _, m := range movements {
		if !strings.HasPrefix(m.Ref, "prod:") {
			continue
		}
		switch m.Type {
		case entity.MovementTypeOutward:
			consumo = m
		case entity.MovementTypeAdjustment:
			reverso = m
		}
	}
	require.NotNil(t, consumo, "el consumo aplicado permanece en el log")
	require.NotNil(t, reverso, "el reverso compensatorio queda registrado")
	assert.Equal(t, consumo.Ref, reverso.Ref, "consumo y reverso comparten el ref del episodio")
	assert.Equal(t, compOro, reverso.ItemID)
	assert.True(t, reverso.Quantity.Equal(qty("6")), "el reverso devuelve exactamente lo consumido")
}

// ledgerIntermitente delega en el libro real pero falla con error de
// almacenamiento a partir de la llamada fallaDesde (caída sostenida: también
// fallan los reversos compensatorios).
type ledgerIntermitente struct {
	real       production.Ledger
	llamadas   int
	fallaDesde int
}

func (l *ledgerIntermitente) RecordMovement(ctx context.Context, input inventory.MovementInput) (string, error) {
	l.llamadas++
	if l.llamadas >= l.fallaDesde {
		return "", domain.ErrStorageUnavailable
	}
	return l.real.RecordMovement(ctx, input)
}

func TestProduce_CompensacionFallida_SeReportaAlCaller(t *testing.T) {
	f := newFixture(t)
	f.seed(t, compOro, "10", "15")
	f.seed(t, compPiedra, "5", "0.5")

	// La caída empieza en el segundo consumo y persiste: el reverso del
	// primer consumo tampoco puede registrarse.
	caido := &ledgerIntermitente{real: f.ledger, fallaDesde: 2}
	uc := production.NewProduceUseCase(caido, f.bomRepo, f.itemRepo, f.locationRepo)

	_, err := uc.Produce(context.Background(), production.ProduceInput{
		ProductID:      prodAnillo,
		Quantity:       qty("1"),
		ToLocationID:   taller,
		FinishedWeight: qty("3.1"),
		Actor:          prodActor,
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)

	// El oro sigue consumido: el caller tiene que enterarse de que la
	// compensación no llegó al log para reintentarla o conciliar el ref.
	assert.True(t, f.balanceQty(t, compOro).Equal(qty("8")), "el consumo quedó sin reversar")
	assert.ErrorContains(t, err, "compensación fallida")
	assert.ErrorContains(t, err, compOro, "el error nombra el componente sin reverso")
	assert.ErrorContains(t, err, "prod:"+prodAnillo+":", "el error trae el ref para conciliar")
}
