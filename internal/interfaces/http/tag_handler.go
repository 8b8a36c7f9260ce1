package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Joyeria-api/internal/application/dto"
	"github.com/jhoicas/Joyeria-api/internal/application/usecase"
)

// TagHandler maneja el registro de etiquetas físicas (protegido).
type TagHandler struct {
	uc *usecase.TagUseCase
}

// NewTagHandler construye el handler.
func NewTagHandler(uc *usecase.TagUseCase) *TagHandler {
	return &TagHandler{uc: uc}
}

// Assign godoc
// @Summary      Asignar etiqueta a una pieza
// @Description  La cadena es única en todo el registro y nunca se recicla.
// @Tags         tags
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AssignTagRequest  true  "Etiqueta y pieza"
// @Success      201   {object}  dto.TagResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/tags [post]
func (h *TagHandler) Assign(c *fiber.Ctx) error {
	var in dto.AssignTagRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Assign(in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Resolve godoc
// @Summary      Resolver una etiqueta escaneada
// @Tags         tags
// @Security     Bearer
// @Produce      json
// @Param        tag  path  string  true  "Cadena de la etiqueta"
// @Success      200  {object}  dto.TagResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tags/{tag} [get]
func (h *TagHandler) Resolve(c *fiber.Ctx) error {
	tag := c.Params("tag")
	if tag == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_TAG", Message: "tag es requerido"})
	}
	out, err := h.uc.Resolve(tag)
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "etiqueta no encontrada"})
	}
	return c.JSON(out)
}

// LabelPDF godoc
// @Summary      Generar etiqueta imprimible (PDF con código de barras)
// @Tags         tags
// @Security     Bearer
// @Produce      application/pdf
// @Param        tag  path  string  true  "Cadena de la etiqueta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tags/{tag}/label.pdf [get]
func (h *TagHandler) LabelPDF(c *fiber.Ctx) error {
	tag := c.Params("tag")
	if tag == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_TAG", Message: "tag es requerido"})
	}
	pdfBytes, err := h.uc.LabelPDF(c.Context(), tag)
	if err != nil {
		return respondError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `inline; filename="etiqueta.pdf"`)
	return c.Send(pdfBytes)
}
