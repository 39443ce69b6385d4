package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panastock-api/internal/application/dto"
	"github.com/jhoicas/panastock-api/internal/application/movement"
	"github.com/jhoicas/panastock-api/internal/domain"
)

// MovementHandler maneja el libro de movimientos de stock (protegido).
type MovementHandler struct {
	register *movement.RegisterMovementUseCase
	list     *movement.ListMovementsUseCase
	del      *movement.DeleteMovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(
	register *movement.RegisterMovementUseCase,
	list *movement.ListMovementsUseCase,
	del *movement.DeleteMovementUseCase,
) *MovementHandler {
	return &MovementHandler{register: register, list: list, del: del}
}

// Create godoc
// @Summary      Registrar movimiento de stock
// @Description  Valida el movimiento completo (todas las razones juntas) y lo
// aplica de forma atómica: o todas las líneas ajustan stock o ninguna.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "type, products, supplier (stock_in) o department (distribution)"
// @Success      201   {object}  dto.Response
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("cuerpo inválido"))
	}
	mov, err := h.register.Register(c.Context(), in, GetUserID(c))
	if err != nil {
		return movementError(c, err)
	}
	out := dto.FromMovement(mov)
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out, "movimiento registrado"))
}

// List godoc
// @Summary      Listar movimientos
// @Description  Filtros opcionales por tipo, departamento y rango de fechas.
// Con grouped=true agrupa por día calendario de la panadería.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        type        query  string  false  "stock_in | distribution"
// @Param        department  query  string  false  "ID del departamento"
// @Param        start_date  query  string  false  "YYYY-MM-DD inclusive"
// @Param        end_date    query  string  false  "YYYY-MM-DD inclusive"
// @Param        grouped     query  bool    false  "agrupar por día"
// @Param        page        query  int     false  "página (desde 1)"
// @Param        limit       query  int     false  "tamaño de página (max 100)"
// @Success      200  {object}  dto.ListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var in dto.ListMovementsRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("query inválida"))
	}
	movs, pagination, err := h.list.List(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("filtros inválidos (fechas YYYY-MM-DD)"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(err.Error()))
	}

	var data any = dto.FromMovements(movs)
	if in.Grouped {
		data = h.list.GroupByDay(movs)
	}
	return c.JSON(dto.ListResponse{Success: true, Data: data, Pagination: pagination})
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	mov, err := h.list.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(err.Error()))
	}
	if mov == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("movimiento no encontrado"))
	}
	out := dto.FromMovement(mov)
	return c.JSON(dto.OK(out, ""))
}

// Delete godoc
// @Summary      Eliminar movimiento (revierte su efecto sobre el stock)
// @Description  Solo procede si la reversa no deja ningún producto en negativo;
// si consumos posteriores dependen de la entrada, responde 409 con el detalle.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	if err := h.del.Delete(c.Context(), c.Params("id")); err != nil {
		return movementError(c, err)
	}
	return c.JSON(dto.OK(nil, "movimiento eliminado y stock revertido"))
}

// movementError traduce los errores del motor de movimientos al envelope HTTP.
func movementError(c *fiber.Ctx, err error) error {
	var vErr *movement.ValidationError
	if errors.As(err, &vErr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("movimiento inválido", vErr.Messages()...))
	}
	var rErr *movement.ReversalError
	if errors.As(err, &rErr) {
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("no se puede revertir el movimiento", rErr.Messages()...))
	}
	if errors.Is(err, domain.ErrConflict) {
		return c.Status(fiber.StatusConflict).JSON(dto.Fail("conflicto de concurrencia, reintente el movimiento"))
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("recurso no encontrado"))
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("datos inválidos"))
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(err.Error()))
}
