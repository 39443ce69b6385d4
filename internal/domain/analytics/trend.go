package analytics

import "github.com/shopspring/decimal"

// Etiquetas de tendencia.
const (
	TrendSignificantDecrease = "significant_decrease"
	TrendDecrease            = "decrease"
	TrendStable              = "stable"
	TrendIncrease            = "increase"
	TrendSignificantIncrease = "significant_increase"
)

// Thresholds define el corte de cambio porcentual a partir del cual una
// variación se considera significativa. Es una decisión de política, no una
// constante derivada; el valor por defecto (50%) produce exactamente:
//
//	<= -50        → significant_decrease
//	(-50, 0)      → decrease
//	0             → stable
//	(0, 50)       → increase
//	>= 50         → significant_increase
type Thresholds struct {
	SignificantPct float64
}

// DefaultThresholds corte por defecto documentado arriba.
var DefaultThresholds = Thresholds{SignificantPct: 50}

// Comparison compara el consumo de un mes contra un mes anterior.
type Comparison struct {
	ComparedToPeriod   string
	CurrentMonthTotal  decimal.Decimal
	ComparedMonthTotal decimal.Decimal
	AbsoluteChange     decimal.Decimal
	UsageChangePct     float64
	Trend              string
}

// Compare calcula el cambio absoluto y porcentual entre dos meses usando los
// umbrales por defecto.
func Compare(current, previous UsageStats) Comparison {
	return CompareWith(current, previous, DefaultThresholds)
}

// CompareWith versión con umbrales explícitos.
//
// Regla del denominador cero: si el mes comparado consumió 0 y el actual
// consumió algo, el cambio se define como 100% ("apareció consumo nuevo");
// si ambos son 0 el cambio es 0%.
func CompareWith(current, previous UsageStats, th Thresholds) Comparison {
	abs := current.TotalUsed.Sub(previous.TotalUsed)

	var pct float64
	switch {
	case previous.TotalUsed.IsZero() && current.TotalUsed.IsPositive():
		pct = 100
	case previous.TotalUsed.IsZero():
		pct = 0
	default:
		pct = abs.InexactFloat64() / previous.TotalUsed.InexactFloat64() * 100
	}

	return Comparison{
		ComparedToPeriod:   previous.Period,
		CurrentMonthTotal:  current.TotalUsed,
		ComparedMonthTotal: previous.TotalUsed,
		AbsoluteChange:     abs,
		UsageChangePct:     pct,
		Trend:              th.Label(pct),
	}
}

// Label clasifica un cambio porcentual en su etiqueta de tendencia.
func (th Thresholds) Label(pct float64) string {
	switch {
	case pct <= -th.SignificantPct:
		return TrendSignificantDecrease
	case pct < 0:
		return TrendDecrease
	case pct == 0:
		return TrendStable
	case pct < th.SignificantPct:
		return TrendIncrease
	default:
		return TrendSignificantIncrease
	}
}
