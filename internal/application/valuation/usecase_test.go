package valuation_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Joyeria-api/internal/application/dto"
	"github.com/jhoicas/Joyeria-api/internal/application/valuation"
	"github.com/jhoicas/Joyeria-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeValuationRepo struct {
	rows []repository.ValuationRow
	err  error
}

func (f *fakeValuationRepo) GetValuationRows(ctx context.Context) ([]repository.ValuationRow, error) {
	return f.rows, f.err
}

type fakePDFGenerator struct {
	got *dto.ValuationResponse
}

func (f *fakePDFGenerator) GenerateValuationPDF(ctx context.Context, report *dto.ValuationResponse) ([]byte, error) {
	f.got = report
	return []byte("%PDF-fake"), nil
}

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestValuation_ValorEsRatePorPeso(t *testing.T) {
	takenAt := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	repo := &fakeValuationRepo{rows: []repository.ValuationRow{
		{
			ItemID: "item-1", SKU: "AN-ORO-001", Name: "Anillo oro", Metal: "gold", Purity: "22K",
			LocationID: "loc-vitrina", Quantity: qty("2"), Weight: qty("10"), Unit: "g",
			Rate: qty("6000"), RateTakenAt: &takenAt,
		},
	}}
	uc := valuation.NewValuationUseCase(repo, &fakePDFGenerator{}, "INR")

	out, err := uc.Valuation(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Lines, 1)

	// 10 g a 6000/g = 60000, independiente de la cantidad de piezas.
	assert.True(t, out.Lines[0].Value.Equal(qty("60000")), "value = rate × weight, quedó %s", out.Lines[0].Value)
	assert.True(t, out.Total.Equal(qty("60000")))
	assert.Equal(t, "INR", out.Currency)
	assert.Equal(t, &takenAt, out.Lines[0].RateTakenAt)
}

func TestValuation_SinPrecio_ContribuyeCeroYSeReporta(t *testing.T) {
	takenAt := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	repo := &fakeValuationRepo{rows: []repository.ValuationRow{
		{ItemID: "item-1", Metal: "gold", Purity: "22K", Weight: qty("10"), Rate: qty("6000"), RateTakenAt: &takenAt},
		// Platino sin snapshot: rate cero, pero la línea no se omite.
		{ItemID: "item-2", Metal: "platinum", Purity: "950", Weight: qty("8"), Rate: decimal.Zero},
	}}
	uc := valuation.NewValuationUseCase(repo, &fakePDFGenerator{}, "INR")

	out, err := uc.Valuation(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Lines, 2, "la pieza sin precio se reporta igual")

	assert.True(t, out.Lines[1].Value.IsZero())
	assert.Nil(t, out.Lines[1].RateTakenAt)
	assert.True(t, out.Total.Equal(qty("60000")), "el total solo suma lo valuable")
}

func TestValuation_InventarioVacio(t *testing.T) {
	uc := valuation.NewValuationUseCase(&fakeValuationRepo{}, &fakePDFGenerator{}, "")

	out, err := uc.Valuation(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out.Lines)
	assert.True(t, out.Total.IsZero())
	assert.Equal(t, "INR", out.Currency, "moneda por defecto cuando config no la fija")
}

func TestValuationPDF_UsaElReporteVigente(t *testing.T) {
	repo := &fakeValuationRepo{rows: []repository.ValuationRow{
		{ItemID: "item-1", Metal: "gold", Purity: "22K", Weight: qty("5"), Rate: qty("1000")},
	}}
	gen := &fakePDFGenerator{}
	uc := valuation.NewValuationUseCase(repo, gen, "INR")

	pdf, err := uc.ValuationPDF(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	require.NotNil(t, gen.got, "el generador recibe el reporte calculado")
	assert.True(t, gen.got.Total.Equal(qty("5000")))
}
