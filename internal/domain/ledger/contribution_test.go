package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Joyeria-api/internal/domain"
	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
	"github.com/jhoicas/Joyeria-api/internal/domain/ledger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func strPtr(s string) *string { return &s }

func mov(movType string, from, to *string, qty, weight string) *entity.Movement {
	return &entity.Movement{
		ID:             "mov-1",
		ItemID:         "item-1",
		Type:           movType,
		Quantity:       decimal.RequireFromString(qty),
		Weight:         decimal.RequireFromString(weight),
		Unit:           "g",
		FromLocationID: from,
		ToLocationID:   to,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// inward: +monto en to, con fallback a from
// ──────────────────────────────────────────────────────────────────────────────

func TestContributions_InwardSumaEnDestino(t *testing.T) {
	contribs, err := ledger.Contributions(mov(entity.MovementTypeInward, nil, strPtr("vitrina"), "5", "50"))
	require.NoError(t, err)
	require.Len(t, contribs, 1)

	assert.Equal(t, "vitrina", contribs[0].LocationID)
	assert.True(t, contribs[0].Quantity.Equal(decimal.NewFromInt(5)), "inward debe sumar la cantidad completa")
	assert.True(t, contribs[0].Weight.Equal(decimal.NewFromInt(50)))
}

func TestContributions_InwardFallbackAFrom(t *testing.T) {
	// Si no hay destino, la entrada cae en from: un solo campo de ubicación
	// diligenciado no debe perder el movimiento.
	contribs, err := ledger.Contributions(mov(entity.MovementTypeInward, strPtr("bodega"), nil, "2", "10"))
	require.NoError(t, err)
	require.Len(t, contribs, 1)
	assert.Equal(t, "bodega", contribs[0].LocationID)
	assert.True(t, contribs[0].Quantity.IsPositive())
}

func TestContributions_InwardSinUbicacion_Rechazado(t *testing.T) {
	_, err := ledger.Contributions(mov(entity.MovementTypeInward, nil, nil, "1", "5"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "una entrada sin ubicación no tiene dónde materializarse")
}

// ──────────────────────────────────────────────────────────────────────────────
// outward: -monto en from, con fallback a to
// ──────────────────────────────────────────────────────────────────────────────

func TestContributions_OutwardRestaEnOrigen(t *testing.T) {
	contribs, err := ledger.Contributions(mov(entity.MovementTypeOutward, strPtr("vitrina"), nil, "2", "20"))
	require.NoError(t, err)
	require.Len(t, contribs, 1)

	assert.Equal(t, "vitrina", contribs[0].LocationID)
	assert.True(t, contribs[0].Quantity.Equal(decimal.NewFromInt(-2)), "outward debe restar")
	assert.True(t, contribs[0].Weight.Equal(decimal.NewFromInt(-20)))
}

func TestContributions_OutwardSinUbicacion_NoTocaBalances(t *testing.T) {
	// Salida sin ubicación rastreada: el movimiento queda en el log pero no
	// contribuye a ningún balance.
	contribs, err := ledger.Contributions(mov(entity.MovementTypeOutward, nil, nil, "1", "5"))
	require.NoError(t, err)
	assert.Empty(t, contribs)
}

// ──────────────────────────────────────────────────────────────────────────────
// transfer: dos contribuciones simétricas
// ──────────────────────────────────────────────────────────────────────────────

func TestContributions_TransferEsSimetrico(t *testing.T) {
	contribs, err := ledger.Contributions(mov(entity.MovementTypeTransfer, strPtr("bodega"), strPtr("vitrina"), "3", "30"))
	require.NoError(t, err)
	require.Len(t, contribs, 2, "un transfer produce exactamente dos contribuciones")

	assert.Equal(t, "bodega", contribs[0].LocationID)
	assert.Equal(t, "vitrina", contribs[1].LocationID)

	// Conservación: la suma neta de un transfer es cero.
	assert.True(t, contribs[0].Quantity.Add(contribs[1].Quantity).IsZero())
	assert.True(t, contribs[0].Weight.Add(contribs[1].Weight).IsZero())
	assert.True(t, contribs[0].Quantity.IsNegative())
	assert.True(t, contribs[1].Quantity.IsPositive())
}

func TestContributions_TransferMismaUbicacion_Rechazado(t *testing.T) {
	_, err := ledger.Contributions(mov(entity.MovementTypeTransfer, strPtr("vitrina"), strPtr("vitrina"), "1", "1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestContributions_TransferSinOrigen_Rechazado(t *testing.T) {
	_, err := ledger.Contributions(mov(entity.MovementTypeTransfer, nil, strPtr("vitrina"), "1", "1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// adjustment: monto firmado, puede ser negativo (merma)
// ──────────────────────────────────────────────────────────────────────────────

func TestContributions_AdjustmentConservaElSigno(t *testing.T) {
	contribs, err := ledger.Contributions(mov(entity.MovementTypeAdjustment, nil, strPtr("caja-fuerte"), "-1", "-4.5"))
	require.NoError(t, err)
	require.Len(t, contribs, 1)

	assert.Equal(t, "caja-fuerte", contribs[0].LocationID)
	assert.True(t, contribs[0].Quantity.Equal(decimal.NewFromInt(-1)), "el ajuste lleva el signo del caller")
	assert.True(t, contribs[0].Weight.Equal(decimal.RequireFromString("-4.5")))
}

func TestContributions_TipoDesconocido_Rechazado(t *testing.T) {
	_, err := ledger.Contributions(mov("teleport", strPtr("a"), strPtr("b"), "1", "1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
