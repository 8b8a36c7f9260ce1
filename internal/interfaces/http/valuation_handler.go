package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Joyeria-api/internal/application/valuation"
)

// ValuationHandler expone la valuación puntual del inventario (protegido).
type ValuationHandler struct {
	uc *valuation.ValuationUseCase
}

// NewValuationHandler construye el handler.
func NewValuationHandler(uc *valuation.ValuationUseCase) *ValuationHandler {
	return &ValuationHandler{uc: uc}
}

// Valuation godoc
// @Summary      Valuar el inventario al último precio conocido
// @Description  Cruza balances no-cero con el último snapshot por (metal, pureza); sin snapshot la pieza vale cero y se reporta igual.
// @Tags         valuation
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ValuationResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/inventory/valuation [get]
func (h *ValuationHandler) Valuation(c *fiber.Ctx) error {
	out, err := h.uc.Valuation(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte de valuación en PDF
// @Tags         valuation
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/inventory/valuation/report.pdf [get]
func (h *ValuationHandler) Report(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.ValuationPDF(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `inline; filename="valuacion.pdf"`)
	return c.Send(pdfBytes)
}
