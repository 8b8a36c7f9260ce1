package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Joyeria-api/internal/application/dto"
	"github.com/jhoicas/Joyeria-api/internal/application/production"
)

// ProductionHandler maneja las órdenes de producción (protegido; roles
// admin y production).
type ProductionHandler struct {
	uc *production.ProduceUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(uc *production.ProduceUseCase) *ProductionHandler {
	return &ProductionHandler{uc: uc}
}

// Produce godoc
// @Summary      Producir piezas terminadas
// @Description  Consume los componentes del BOM escalados y registra la entrada del producto terminado. Si un paso falla, los consumos previos se revierten con ajustes compensatorios bajo el mismo ref.
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProduceRequest  true  "Orden de producción"
// @Success      201   {object}  dto.ProduceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/production [post]
func (h *ProductionHandler) Produce(c *fiber.Ctx) error {
	var in dto.ProduceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.Produce(c.Context(), production.ProduceInput{
		ProductID:      in.ProductID,
		Quantity:       in.Quantity,
		ToLocationID:   in.ToLocationID,
		FinishedWeight: in.FinishedWeight,
		Unit:           in.Unit,
		Note:           in.Note,
		Actor:          GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ProduceResponse{
		Ref:         result.Ref,
		MovementIDs: result.MovementIDs,
	})
}
