package analytics

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// MonthUsage identifica un mes y su consumo total (para picos y valles).
type MonthUsage struct {
	Period    string
	Month     time.Month
	Year      int
	TotalUsed decimal.Decimal
}

// Summary reduce un conjunto de meses analizados a estadísticas globales.
type Summary struct {
	TotalMonthsAnalyzed      int
	AverageMonthlyUsage      float64
	HighestUsageMonth        MonthUsage
	LowestUsageMonth         MonthUsage
	OverallTrend             string
	CurrentStock             decimal.Decimal
	EstimatedMonthsRemaining float64 // +Inf si el promedio es 0
}

// Summarize calcula el resumen global sobre [current, previous...].
//
// El promedio mensual incluye los meses con consumo cero: un mes sin
// distribuciones cuenta como 0 y baja el promedio, porque refleja la
// velocidad real de consumo. previous viene ordenado del más reciente al
// más antiguo; OverallTrend es la tendencia de current contra el mes
// inmediatamente anterior (stable si no hay meses previos).
func Summarize(current UsageStats, previous []UsageStats, currentStock decimal.Decimal) Summary {
	months := append([]UsageStats{current}, previous...)

	sum := decimal.Zero
	for _, m := range months {
		sum = sum.Add(m.TotalUsed)
	}
	avg := sum.InexactFloat64() / float64(len(months))

	// Empates en pico/valle: gana el período más reciente (months ya está
	// ordenado por recencia, así que el estricto > / < conserva el primero).
	highest, lowest := months[0], months[0]
	for _, m := range months[1:] {
		if m.TotalUsed.GreaterThan(highest.TotalUsed) {
			highest = m
		}
		if m.TotalUsed.LessThan(lowest.TotalUsed) {
			lowest = m
		}
	}

	trend := TrendStable
	if len(previous) > 0 {
		trend = Compare(current, previous[0]).Trend
	}

	estMonths := math.Inf(1)
	if avg > 0 {
		estMonths = currentStock.InexactFloat64() / avg
	}

	return Summary{
		TotalMonthsAnalyzed:      len(months),
		AverageMonthlyUsage:      avg,
		HighestUsageMonth:        monthUsage(highest),
		LowestUsageMonth:         monthUsage(lowest),
		OverallTrend:             trend,
		CurrentStock:             currentStock,
		EstimatedMonthsRemaining: estMonths,
	}
}

func monthUsage(s UsageStats) MonthUsage {
	return MonthUsage{Period: s.Period, Month: s.Month, Year: s.Year, TotalUsed: s.TotalUsed}
}
