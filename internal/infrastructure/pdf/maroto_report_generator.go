// Package pdf implementa las salidas imprimibles del back office: el reporte
// de valuación del inventario y la etiqueta física con código de barras.
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Joyeria-api/internal/application/dto"
	appusecase "github.com/jhoicas/Joyeria-api/internal/application/usecase"
	"github.com/jhoicas/Joyeria-api/internal/application/valuation"
	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 120, Green: 85, Blue: 20}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// Ensure both application ports are implemented.
var _ valuation.ReportPDFGenerator = (*MarotoGenerator)(nil)
var _ appusecase.TagLabelPDFGenerator = (*MarotoGenerator)(nil)

// MarotoGenerator genera los documentos con Maroto v2.
type MarotoGenerator struct{}

// NewMarotoGenerator construye el generador.
func NewMarotoGenerator() *MarotoGenerator { return &MarotoGenerator{} }

// GenerateValuationPDF genera el reporte de valuación y devuelve sus bytes.
func (g *MarotoGenerator) GenerateValuationPDF(_ context.Context, report *dto.ValuationResponse) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Valuación de inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(row.New(12).Add(
		col.New(8).Add(
			text.New("Valuación de inventario", props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("Total: %s %s", report.Total.StringFixed(2), report.Currency), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2,
			}),
		),
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(valuationHeaderRow())
	for _, l := range report.Lines {
		m.AddRows(valuationLineRow(l))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(
		col.New(12).Add(
			text.New("Valuación advisory al último precio conocido por (metal, pureza); claves sin precio valen 0.", props.Text{
				Size: 7, Color: colorGray, Top: 2,
			}),
		),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte de valuación: %w", err)
	}
	return doc.GetBytes(), nil
}

func valuationHeaderRow() core.Row {
	return row.New(7).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		headerCell(3, "SKU"),
		headerCell(2, "Metal"),
		headerCell(1, "Pureza"),
		headerCell(2, "Peso"),
		headerCell(2, "Tarifa"),
		headerCell(2, "Valor"),
	)
}

func headerCell(size int, label string) core.Col {
	return col.New(size).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorWhite, Top: 1.5}),
	)
}

func valuationLineRow(l dto.ValuationLine) core.Row {
	return row.New(6).Add(
		col.New(3).Add(text.New(l.SKU, props.Text{Size: 8, Top: 1})),
		col.New(2).Add(text.New(l.Metal, props.Text{Size: 8, Top: 1})),
		col.New(1).Add(text.New(l.Purity, props.Text{Size: 8, Top: 1})),
		col.New(2).Add(text.New(l.Weight.StringFixed(3)+" "+l.Unit, props.Text{Size: 8, Top: 1, Align: align.Right})),
		col.New(2).Add(text.New(l.Rate.StringFixed(2), props.Text{Size: 8, Top: 1, Align: align.Right})),
		col.New(2).Add(text.New(l.Value.StringFixed(2), props.Text{Size: 8, Top: 1, Align: align.Right, Style: fontstyle.Bold})),
	)
}

// GenerateTagLabelPDF genera la etiqueta imprimible de una pieza: SKU,
// metal/pureza y la cadena de la etiqueta como código de barras Code-128.
func (g *MarotoGenerator) GenerateTagLabelPDF(_ context.Context, tag *entity.Tag, item *entity.Item) ([]byte, error) {
	cfg := config.NewBuilder().
		WithDimensions(80, 40).
		WithLeftMargin(4).WithRightMargin(4).
		WithTopMargin(3).WithBottomMargin(3).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 7}).
		Build()

	m := maroto.New(cfg)

	m.AddRows(row.New(6).Add(
		col.New(8).Add(
			text.New(item.SKU, props.Text{Style: fontstyle.Bold, Size: 9}),
		),
		col.New(4).Add(
			text.New(item.Metal+" "+item.Purity, props.Text{Size: 7, Align: align.Right, Top: 1}),
		),
	))
	m.AddRows(row.New(5).Add(
		col.New(12).Add(
			text.New(item.Weight.StringFixed(3)+" "+item.WeightUnit, props.Text{Size: 7, Color: colorGray}),
		),
	))
	m.AddRows(row.New(14).Add(
		col.New(12).Add(
			code.NewBar(tag.TagString, props.Barcode{Center: true, Proportion: props.Proportion{Width: 4, Height: 1}}),
		),
	))
	m.AddRows(row.New(4).Add(
		col.New(12).Add(
			text.New(tag.TagString, props.Text{Size: 6, Align: align.Center, Color: colorGray}),
		),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar etiqueta: %w", err)
	}
	return doc.GetBytes(), nil
}
