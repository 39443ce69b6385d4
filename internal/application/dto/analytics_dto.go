package dto

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panastock-api/internal/domain/analytics"
)

// ── Consumo mensual ───────────────────────────────────────────────────────────

// UsageEventDTO evento de consumo individual (drill-down).
type UsageEventDTO struct {
	Date         Timestamp       `json:"date"`
	QuantityUsed decimal.Decimal `json:"quantityUsed"`
	MovementID   string          `json:"movementId"`
	DepartmentID string          `json:"departmentId"`
	UsedBy       string          `json:"usedBy"`
}

// UsageStatsDTO estadísticas de un producto en un mes calendario.
//
// EstimatedDaysRemaining es null cuando la tasa observada es 0 (JSON no tiene
// literal Infinity; null significa "el stock no se agota al ritmo actual").
type UsageStatsDTO struct {
	Period                 string          `json:"period"`
	Month                  int             `json:"month"`
	Year                   int             `json:"year"`
	TotalUsed              decimal.Decimal `json:"totalUsed"`
	UsageCount             int             `json:"usageCount"`
	AverageDailyUsage      float64         `json:"averageDailyUsage"`
	DaysInMonth            int             `json:"daysInMonth"`
	EstimatedDaysRemaining *float64        `json:"estimatedDaysRemaining"`
	UsageEvents            []UsageEventDTO `json:"usageEvents"`
}

// ComparisonDTO comparación del mes actual contra un mes anterior.
type ComparisonDTO struct {
	ComparedToPeriod   string          `json:"comparedToPeriod"`
	CurrentMonthTotal  decimal.Decimal `json:"currentMonthTotal"`
	ComparedMonthTotal decimal.Decimal `json:"comparedMonthTotal"`
	AbsoluteChange     decimal.Decimal `json:"absoluteChange"`
	UsageChangePct     float64         `json:"usageChange"`
	Trend              string          `json:"trend"`
}

// MonthUsageDTO mes identificado con su total (pico/valle).
type MonthUsageDTO struct {
	Period    string          `json:"period"`
	Month     int             `json:"month"`
	Year      int             `json:"year"`
	TotalUsed decimal.Decimal `json:"totalUsed"`
}

// AnalyticsSummaryDTO resumen global del consumo analizado.
type AnalyticsSummaryDTO struct {
	TotalMonthsAnalyzed      int             `json:"totalMonthsAnalyzed"`
	AverageMonthlyUsage      float64         `json:"averageMonthlyUsage"`
	HighestUsageMonth        MonthUsageDTO   `json:"highestUsageMonth"`
	LowestUsageMonth         MonthUsageDTO   `json:"lowestUsageMonth"`
	OverallTrend             string          `json:"overallTrend"`
	CurrentStock             decimal.Decimal `json:"currentStock"`
	EstimatedMonthsRemaining *float64        `json:"estimatedMonthsRemaining"` // null = ilimitado
}

// UsageAnalyticsDTO respuesta de GET /api/products/:id/usage-analytics.
type UsageAnalyticsDTO struct {
	CurrentMonth   UsageStatsDTO       `json:"currentMonth"`
	PreviousMonths []UsageStatsDTO     `json:"previousMonths"`
	Comparisons    []ComparisonDTO     `json:"comparisons"`
	Summary        AnalyticsSummaryDTO `json:"summary"`
}

// ── Mapeos desde el dominio ───────────────────────────────────────────────────

// FromUsageStats mapea analytics.UsageStats al DTO.
func FromUsageStats(s analytics.UsageStats) UsageStatsDTO {
	events := make([]UsageEventDTO, 0, len(s.Events))
	for _, ev := range s.Events {
		events = append(events, UsageEventDTO{
			Date:         Timestamp{Time: ev.Date},
			QuantityUsed: ev.QuantityUsed,
			MovementID:   ev.MovementID,
			DepartmentID: ev.DepartmentID,
			UsedBy:       ev.UsedBy,
		})
	}
	return UsageStatsDTO{
		Period:                 s.Period,
		Month:                  int(s.Month),
		Year:                   s.Year,
		TotalUsed:              s.TotalUsed,
		UsageCount:             s.UsageCount,
		AverageDailyUsage:      s.AverageDailyUsage,
		DaysInMonth:            s.DaysInMonth,
		EstimatedDaysRemaining: finiteOrNil(s.EstimatedDaysRemaining),
		UsageEvents:            events,
	}
}

// FromComparison mapea analytics.Comparison al DTO.
func FromComparison(c analytics.Comparison) ComparisonDTO {
	return ComparisonDTO{
		ComparedToPeriod:   c.ComparedToPeriod,
		CurrentMonthTotal:  c.CurrentMonthTotal,
		ComparedMonthTotal: c.ComparedMonthTotal,
		AbsoluteChange:     c.AbsoluteChange,
		UsageChangePct:     c.UsageChangePct,
		Trend:              c.Trend,
	}
}

// FromSummary mapea analytics.Summary al DTO.
func FromSummary(s analytics.Summary) AnalyticsSummaryDTO {
	return AnalyticsSummaryDTO{
		TotalMonthsAnalyzed:      s.TotalMonthsAnalyzed,
		AverageMonthlyUsage:      s.AverageMonthlyUsage,
		HighestUsageMonth:        fromMonthUsage(s.HighestUsageMonth),
		LowestUsageMonth:         fromMonthUsage(s.LowestUsageMonth),
		OverallTrend:             s.OverallTrend,
		CurrentStock:             s.CurrentStock,
		EstimatedMonthsRemaining: finiteOrNil(s.EstimatedMonthsRemaining),
	}
}

func fromMonthUsage(m analytics.MonthUsage) MonthUsageDTO {
	return MonthUsageDTO{Period: m.Period, Month: int(m.Month), Year: m.Year, TotalUsed: m.TotalUsed}
}

// finiteOrNil traduce el centinela +Inf del dominio a null en el wire.
func finiteOrNil(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}
