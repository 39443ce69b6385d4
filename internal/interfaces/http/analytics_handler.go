package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panastock-api/internal/application/analytics"
	"github.com/jhoicas/panastock-api/internal/application/dto"
	"github.com/jhoicas/panastock-api/internal/domain"
)

// AnalyticsHandler expone las estadísticas de consumo por producto (protegido).
type AnalyticsHandler struct {
	uc *analytics.UsageAnalyticsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.UsageAnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// UsageStats godoc
// @Summary      Consumo mensual de un producto
// @Description  Agrega las distribuciones del producto en el mes pedido
// (por defecto el mes en curso). Todo es derivado del libro de movimientos.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del producto"
// @Param        month  query  int     false  "mes 1-12 (por defecto el actual)"
// @Param        year   query  int     false  "año (por defecto el actual)"
// @Success      200  {object}  dto.Response
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/usage-stats [get]
func (h *AnalyticsHandler) UsageStats(c *fiber.Ctx) error {
	now := time.Now()
	month := c.QueryInt("month", int(now.Month()))
	year := c.QueryInt("year", now.Year())
	if month < 1 || month > 12 || year < 2000 || year > 2200 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("month debe ser 1-12 y year un año válido"))
	}

	out, err := h.uc.GetUsageStats(c.Context(), c.Params("id"), month, year)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("producto no encontrado"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(err.Error()))
	}
	return c.JSON(dto.OK(out, ""))
}

// UsageAnalytics godoc
// @Summary      Analítica de consumo multi-mes de un producto
// @Description  Mes en curso + meses previos, comparaciones de tendencia y
// resumen con proyección de agotamiento (null = el stock no se agota al ritmo actual).
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        id              path   string  true   "ID del producto"
// @Param        previousMonths  query  int     false  "meses previos a incluir (por defecto 3, max 24)"
// @Success      200  {object}  dto.Response
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/usage-analytics [get]
func (h *AnalyticsHandler) UsageAnalytics(c *fiber.Ctx) error {
	// months se acepta como alias del parámetro documentado.
	months := c.QueryInt("previousMonths", c.QueryInt("months", 0))
	out, err := h.uc.GetUsageAnalytics(c.Context(), c.Params("id"), months)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.Fail("producto no encontrado"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(err.Error()))
	}
	return c.JSON(dto.OK(out, ""))
}
