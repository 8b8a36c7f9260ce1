package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Joyeria-api/internal/application/dto"
	"github.com/jhoicas/Joyeria-api/internal/application/usecase"
)

// BOMHandler maneja las recetas de producción (protegido).
type BOMHandler struct {
	uc *usecase.BOMUseCase
}

// NewBOMHandler construye el handler.
func NewBOMHandler(uc *usecase.BOMUseCase) *BOMHandler {
	return &BOMHandler{uc: uc}
}

// Upsert godoc
// @Summary      Definir o reemplazar la receta de un producto
// @Tags         boms
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        product_id  path  string                 true  "ID del producto terminado"
// @Param        body        body  dto.UpsertBOMRequest   true  "Componentes de la receta"
// @Success      200  {object}  dto.BOMResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/boms/{product_id} [put]
func (h *BOMHandler) Upsert(c *fiber.Ctx) error {
	productID := c.Params("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "product_id es requerido"})
	}
	var in dto.UpsertBOMRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Upsert(productID, in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByProduct godoc
// @Summary      Consultar la receta vigente de un producto
// @Tags         boms
// @Security     Bearer
// @Produce      json
// @Param        product_id  path  string  true  "ID del producto terminado"
// @Success      200  {object}  dto.BOMResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/boms/{product_id} [get]
func (h *BOMHandler) GetByProduct(c *fiber.Ctx) error {
	productID := c.Params("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "product_id es requerido"})
	}
	out, err := h.uc.GetByProduct(productID)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "receta no definida para el producto"})
	}
	return c.JSON(out)
}
