package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/domain/repository"
	"github.com/jhoicas/Joyeria-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Balances: el delta incremental no pierde escrituras sobre un par virgen
// ──────────────────────────────────────────────────────────────────────────────

func TestBalanceRepo_ApplyDelta_ParVirgenNoPierdeEscrituras(t *testing.T) {
	repo := memory.NewBalanceRepository()

	// Dos registradores leen el par virgen a la vez: ambos ven cero y no
	// hay fila que bloquear. Con escritura absoluta el segundo pisaría al
	// primero; con delta incremental las dos contribuciones suman.
	b1, err := repo.GetForUpdate("item-1", "loc-1")
	require.NoError(t, err)
	b2, err := repo.GetForUpdate("item-1", "loc-1")
	require.NoError(t, err)
	assert.True(t, b1.Quantity.IsZero())
	assert.True(t, b2.Quantity.IsZero())

	require.NoError(t, repo.ApplyDelta("item-1", "loc-1", d("5"), d("2.5"), "g"))
	require.NoError(t, repo.ApplyDelta("item-1", "loc-1", d("3"), d("1.5"), "g"))

	got, err := repo.Get("item-1", "loc-1")
	require.NoError(t, err)
	assert.True(t, got.Quantity.Equal(d("8")), "5 + 3, ninguna contribución se pierde")
	assert.True(t, got.Weight.Equal(d("4")))
	assert.Equal(t, "g", got.Unit)
}

func TestBalanceRepo_ApplyDelta_Concurrente(t *testing.T) {
	repo := memory.NewBalanceRepository()

	const n = 25
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.ApplyDelta("item-1", "loc-1", d("1"), d("0.5"), "g")
		}()
	}
	wg.Wait()

	got, err := repo.Get("item-1", "loc-1")
	require.NoError(t, err)
	assert.True(t, got.Quantity.Equal(d("25")))
	assert.True(t, got.Weight.Equal(d("12.5")))
}

func TestBalanceRepo_ApplyDelta_MaterializaYNegativo(t *testing.T) {
	repo := memory.NewBalanceRepository()

	// Un ajuste puede dejar el par en negativo; la fila se materializa en
	// la primera escritura.
	require.NoError(t, repo.ApplyDelta("item-1", "loc-1", d("-2"), d("-3"), "g"))
	got, err := repo.Get("item-1", "loc-1")
	require.NoError(t, err)
	assert.True(t, got.Quantity.Equal(d("-2")))

	list, err := repo.List(context.Background(), "item-1", "")
	require.NoError(t, err)
	require.Len(t, list, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos: el orden más-reciente-primero desempata por inserción
// ──────────────────────────────────────────────────────────────────────────────

func TestMovementRepo_List_DesempataPorOrdenDeInsercion(t *testing.T) {
	repo := memory.NewMovementRepository()
	loc := "loc-taller"
	tick := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	// Mismo created_at y ids elegidos para que el orden lexicográfico
	// contradiga la inserción: el desempate debe ser el orden real de
	// escritura, no el id.
	require.NoError(t, repo.Create(&entity.Movement{
		ID: "zzz-primero", ItemID: "item-1", Type: entity.MovementTypeInward,
		Quantity: d("1"), ToLocationID: &loc, CreatedAt: tick,
	}))
	require.NoError(t, repo.Create(&entity.Movement{
		ID: "aaa-segundo", ItemID: "item-1", Type: entity.MovementTypeInward,
		Quantity: d("1"), ToLocationID: &loc, CreatedAt: tick,
	}))
	require.NoError(t, repo.Create(&entity.Movement{
		ID: "mmm-tercero", ItemID: "item-1", Type: entity.MovementTypeInward,
		Quantity: d("1"), ToLocationID: &loc, CreatedAt: tick,
	}))

	list, err := repo.List(context.Background(), repository.MovementFilter{ItemID: "item-1", Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "mmm-tercero", list[0].ID)
	assert.Equal(t, "aaa-segundo", list[1].ID)
	assert.Equal(t, "zzz-primero", list[2].ID)

	// La paginación corta sobre el mismo orden determinista.
	page, err := repo.List(context.Background(), repository.MovementFilter{ItemID: "item-1", Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "aaa-segundo", page[0].ID)
	assert.Equal(t, "zzz-primero", page[1].ID)
}

func TestMovementRepo_List_CreatedAtMandaSobreInsercion(t *testing.T) {
	repo := memory.NewMovementRepository()
	loc := "loc-taller"
	base := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(&entity.Movement{
		ID: "mov-tarde", ItemID: "item-1", Type: entity.MovementTypeInward,
		Quantity: d("1"), ToLocationID: &loc, CreatedAt: base.Add(time.Minute),
	}))
	require.NoError(t, repo.Create(&entity.Movement{
		ID: "mov-temprano", ItemID: "item-1", Type: entity.MovementTypeInward,
		Quantity: d("1"), ToLocationID: &loc, CreatedAt: base,
	}))

	list, err := repo.List(context.Background(), repository.MovementFilter{ItemID: "item-1", Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "mov-tarde", list[0].ID, "created_at sigue siendo el criterio primario")
}
