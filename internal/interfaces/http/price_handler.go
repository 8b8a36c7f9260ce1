package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Joyeria-api/internal/application/dto"
	"github.com/jhoicas/Joyeria-api/internal/application/usecase"
)

// PriceHandler maneja la serie de precios de metales (protegido; ingesta
// solo admin).
type PriceHandler struct {
	uc *usecase.PriceUseCase
}

// NewPriceHandler construye el handler.
func NewPriceHandler(uc *usecase.PriceUseCase) *PriceHandler {
	return &PriceHandler{uc: uc}
}

// Ingest godoc
// @Summary      Ingresar snapshot de precio
// @Description  Punto append-only de la serie (metal, pureza); la valuación usa siempre el más reciente.
// @Tags         prices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePriceSnapshotRequest  true  "Punto de precio"
// @Success      201   {object}  dto.PriceSnapshotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/prices [post]
func (h *PriceHandler) Ingest(c *fiber.Ctx) error {
	var in dto.CreatePriceSnapshotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Ingest(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Latest godoc
// @Summary      Último precio por (metal, pureza)
// @Tags         prices
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.LatestPricesResponse
// @Router       /api/prices/latest [get]
func (h *PriceHandler) Latest(c *fiber.Ctx) error {
	out, err := h.uc.Latest(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
