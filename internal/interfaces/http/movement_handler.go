package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Joyeria-api/internal/application/dto"
	"github.com/jhoicas/Joyeria-api/internal/application/inventory"
	"github.com/jhoicas/Joyeria-api/internal/domain/entity"
)

// MovementHandler maneja las peticiones HTTP del libro mayor de stock
// (protegido).
type MovementHandler struct {
	uc *inventory.LedgerUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *inventory.LedgerUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar movimiento de stock
// @Description  Añade una entrada al log inmutable y proyecta el balance en la misma transacción.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "Datos del movimiento"
// @Success      201   {object}  dto.RecordMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *MovementHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	movementID, err := h.uc.RecordMovement(c.Context(), inventory.MovementInput{
		ItemID:         in.ItemID,
		Type:           in.Type,
		Quantity:       in.Quantity,
		Weight:         in.Weight,
		Unit:           in.Unit,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Ref:            in.Ref,
		Note:           in.Note,
		Actor:          GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RecordMovementResponse{MovementID: movementID})
}

// Ledger godoc
// @Summary      Consultar el libro mayor
// @Description  Movimientos del más reciente al más antiguo, filtrables por pieza y ubicación.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id      query  string  false  "Filtrar por pieza"
// @Param        location_id  query  string  false  "Filtrar por ubicación (origen o destino)"
// @Param        limit        query  int     false  "Tamaño de página (default 20, máx 100)"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.LedgerResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/inventory/ledger [get]
func (h *MovementHandler) Ledger(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	movements, err := h.uc.GetLedger(c.Context(), c.Query("item_id"), c.Query("location_id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := dto.LedgerResponse{
		Movements: make([]dto.MovementResponse, 0, len(movements)),
		Page:      dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, m := range movements {
		out.Movements = append(out.Movements, movementToResponse(m))
	}
	return c.JSON(out)
}

// Balances godoc
// @Summary      Consultar balances actuales
// @Description  Balances no-cero por (pieza, ubicación), filtrables.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id      query  string  false  "Filtrar por pieza"
// @Param        location_id  query  string  false  "Filtrar por ubicación"
// @Success      200  {object}  dto.BalanceListResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/inventory/balances [get]
func (h *MovementHandler) Balances(c *fiber.Ctx) error {
	balances, err := h.uc.GetBalances(c.Context(), c.Query("item_id"), c.Query("location_id"))
	if err != nil {
		return respondError(c, err)
	}
	out := dto.BalanceListResponse{Balances: make([]dto.BalanceResponse, 0, len(balances))}
	for _, b := range balances {
		out.Balances = append(out.Balances, dto.BalanceResponse{
			ItemID:     b.ItemID,
			LocationID: b.LocationID,
			Quantity:   b.Quantity,
			Weight:     b.Weight,
			Unit:       b.Unit,
			UpdatedAt:  b.UpdatedAt,
		})
	}
	return c.JSON(out)
}

func movementToResponse(m *entity.Movement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		ItemID:         m.ItemID,
		Type:           m.Type,
		Quantity:       m.Quantity,
		Weight:         m.Weight,
		Unit:           m.Unit,
		FromLocationID: m.FromLocationID,
		ToLocationID:   m.ToLocationID,
		Ref:            m.Ref,
		Note:           m.Note,
		CreatedBy:      m.CreatedBy,
		CreatedAt:      m.CreatedAt,
	}
}
