// Package analytics contiene los casos de uso de la analítica de consumo:
// estadísticas mensuales por producto, comparativas entre períodos y la
// proyección de agotamiento de stock.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/panastock-api/internal/application/dto"
	"github.com/jhoicas/panastock-api/internal/domain"
	"github.com/jhoicas/panastock-api/internal/domain/analytics"
	"github.com/jhoicas/panastock-api/internal/domain/repository"
)

const (
	defaultPreviousMonths = 3
	maxPreviousMonths     = 24
)

// UsageAnalyticsUseCase calcula UsageStats/Comparison/Summary bajo demanda.
// Nada se persiste: el libro de movimientos es la única fuente de verdad y
// todo resultado es recomputable desde él.
type UsageAnalyticsUseCase struct {
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
	location    *time.Location
	now         func() time.Time // inyectable en tests
}

// NewUsageAnalyticsUseCase construye el caso de uso. loc nil usa la zona local.
func NewUsageAnalyticsUseCase(
	productRepo repository.ProductRepository,
	movRepo repository.StockMovementRepository,
	loc *time.Location,
) *UsageAnalyticsUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &UsageAnalyticsUseCase{
		productRepo: productRepo,
		movRepo:     movRepo,
		location:    loc,
		now:         func() time.Time { return time.Now().In(loc) },
	}
}

// GetUsageStats devuelve las estadísticas de un producto para un mes
// calendario. month/year en cero significan el mes en curso.
func (uc *UsageAnalyticsUseCase) GetUsageStats(ctx context.Context, productID string, month, year int) (*dto.UsageStatsDTO, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.now()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: mes %d fuera de rango", domain.ErrInvalidInput, month)
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, uc.location)
	events, err := uc.movRepo.ListUsageEvents(ctx, productID, start, start.AddDate(0, 1, 0))
	if err != nil {
		return nil, fmt.Errorf("eventos de consumo: %w", err)
	}

	stats := analytics.AggregateMonth(events, time.Month(month), year, product.Quantity, now)
	out := dto.FromUsageStats(stats)
	return &out, nil
}

// GetUsageAnalytics devuelve el paquete completo para la pantalla de
// analítica: mes en curso, N meses previos, comparativas del mes actual
// contra cada mes previo y el resumen global.
func (uc *UsageAnalyticsUseCase) GetUsageAnalytics(ctx context.Context, productID string, previousMonths int) (*dto.UsageAnalyticsDTO, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if previousMonths <= 0 {
		previousMonths = defaultPreviousMonths
	}
	if previousMonths > maxPreviousMonths {
		previousMonths = maxPreviousMonths
	}

	now := uc.now()
	currentStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, uc.location)

	// Una sola consulta para todo el rango analizado; AggregateMonth corta
	// cada mes por su cuenta.
	rangeStart := currentStart.AddDate(0, -previousMonths, 0)
	events, err := uc.movRepo.ListUsageEvents(ctx, productID, rangeStart, currentStart.AddDate(0, 1, 0))
	if err != nil {
		return nil, fmt.Errorf("eventos de consumo: %w", err)
	}

	current := analytics.AggregateMonth(events, now.Month(), now.Year(), product.Quantity, now)

	previous := make([]analytics.UsageStats, 0, previousMonths)
	for i := 1; i <= previousMonths; i++ {
		m := currentStart.AddDate(0, -i, 0)
		previous = append(previous, analytics.AggregateMonth(events, m.Month(), m.Year(), product.Quantity, now))
	}

	// Comparativa del mes en curso contra cada mes previo; la primera
	// (contra el mes inmediatamente anterior) define la tendencia global.
	comparisons := make([]dto.ComparisonDTO, 0, len(previous))
	for _, prev := range previous {
		comparisons = append(comparisons, dto.FromComparison(analytics.Compare(current, prev)))
	}

	summary := analytics.Summarize(current, previous, product.Quantity)

	prevDTOs := make([]dto.UsageStatsDTO, 0, len(previous))
	for _, p := range previous {
		prevDTOs = append(prevDTOs, dto.FromUsageStats(p))
	}

	return &dto.UsageAnalyticsDTO{
		CurrentMonth:   dto.FromUsageStats(current),
		PreviousMonths: prevDTOs,
		Comparisons:    comparisons,
		Summary:        dto.FromSummary(summary),
	}, nil
}
