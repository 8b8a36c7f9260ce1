// Package valuation valora el inventario vigente al último precio conocido
// por (metal, pureza). Es una lectura advisory: una clave sin precio no es
// error, contribuye cero.
package valuation

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Joyeria-api/internal/application/dto"
	"github.com/jhoicas/Joyeria-api/internal/domain/repository"
)

// ReportPDFGenerator puerto de la representación imprimible del reporte.
type ReportPDFGenerator interface {
	GenerateValuationPDF(ctx context.Context, report *dto.ValuationResponse) ([]byte, error)
}

// ValuationUseCase calcula la valuación puntual del inventario.
type ValuationUseCase struct {
	valuationRepo repository.ValuationRepository
	pdfGenerator  ReportPDFGenerator
	currency      string
}

// NewValuationUseCase construye el caso de uso. currency viene de config
// (VALUATION_CURRENCY); el precio se lee por llamada, nunca se cachea en el
// proceso, para evitar precios rancios en procesos longevos.
func NewValuationUseCase(valuationRepo repository.ValuationRepository, pdfGenerator ReportPDFGenerator, currency string) *ValuationUseCase {
	if currency == "" {
		currency = "INR"
	}
	return &ValuationUseCase{valuationRepo: valuationRepo, pdfGenerator: pdfGenerator, currency: currency}
}

// Valuation une balances no-cero con el snapshot más reciente por clave.
// value = rate × weight por línea; total = Σ values.
func (uc *ValuationUseCase) Valuation(ctx context.Context) (*dto.ValuationResponse, error) {
	rows, err := uc.valuationRepo.GetValuationRows(ctx)
	if err != nil {
		return nil, err
	}

	out := &dto.ValuationResponse{
		Total:    decimal.Zero,
		Currency: uc.currency,
		Lines:    make([]dto.ValuationLine, 0, len(rows)),
	}
	for _, row := range rows {
		value := row.Rate.Mul(row.Weight)
		out.Lines = append(out.Lines, dto.ValuationLine{
			ItemID:      row.ItemID,
			SKU:         row.SKU,
			Name:        row.Name,
			Metal:       row.Metal,
			Purity:      row.Purity,
			LocationID:  row.LocationID,
			Quantity:    row.Quantity,
			Weight:      row.Weight,
			Unit:        row.Unit,
			Rate:        row.Rate,
			RateTakenAt: row.RateTakenAt,
			Value:       value,
		})
		out.Total = out.Total.Add(value)
	}
	return out, nil
}

// ValuationPDF genera el reporte imprimible de la valuación vigente.
func (uc *ValuationUseCase) ValuationPDF(ctx context.Context) ([]byte, error) {
	report, err := uc.Valuation(ctx)
	if err != nil {
		return nil, err
	}
	return uc.pdfGenerator.GenerateValuationPDF(ctx, report)
}
