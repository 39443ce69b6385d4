package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/panastock-api/internal/domain/analytics"
)

func statsFor(month time.Month, year int, total string) analytics.UsageStats {
	return analytics.UsageStats{
		Period:    analytics.PeriodLabel(month, year),
		Month:     month,
		Year:      year,
		TotalUsed: dec(total),
	}
}

func TestCompare_CambioPorcentual(t *testing.T) {
	cur := statsFor(time.August, 2026, "150")
	prev := statsFor(time.July, 2026, "100")

	c := analytics.Compare(cur, prev)

	assert.Equal(t, "Julio 2026", c.ComparedToPeriod)
	assert.True(t, c.AbsoluteChange.Equal(dec("50")))
	assert.InDelta(t, 50.0, c.UsageChangePct, 1e-9)
	assert.Equal(t, analytics.TrendSignificantIncrease, c.Trend, "50% ya es significativo")
}

func TestCompare_DenominadorCero(t *testing.T) {
	// Mes previo sin consumo y actual con consumo: 100% por definición.
	c := analytics.Compare(statsFor(time.August, 2026, "30"), statsFor(time.July, 2026, "0"))
	assert.InDelta(t, 100.0, c.UsageChangePct, 1e-9)
	assert.Equal(t, analytics.TrendSignificantIncrease, c.Trend)

	// Ambos meses en cero: 0% y estable.
	c = analytics.Compare(statsFor(time.August, 2026, "0"), statsFor(time.July, 2026, "0"))
	assert.Zero(t, c.UsageChangePct)
	assert.Equal(t, analytics.TrendStable, c.Trend)
}

func TestThresholds_Label(t *testing.T) {
	th := analytics.DefaultThresholds
	cases := []struct {
		pct  float64
		want string
	}{
		{-80, analytics.TrendSignificantDecrease},
		{-50, analytics.TrendSignificantDecrease}, // borde inclusivo
		{-49.9, analytics.TrendDecrease},
		{-0.1, analytics.TrendDecrease},
		{0, analytics.TrendStable},
		{0.1, analytics.TrendIncrease},
		{49.9, analytics.TrendIncrease},
		{50, analytics.TrendSignificantIncrease}, // borde inclusivo
		{120, analytics.TrendSignificantIncrease},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, th.Label(tc.pct), "pct=%v", tc.pct)
	}
}

func TestThresholds_Personalizados(t *testing.T) {
	th := analytics.Thresholds{SignificantPct: 20}
	assert.Equal(t, analytics.TrendSignificantIncrease, th.Label(25))
	assert.Equal(t, analytics.TrendIncrease, th.Label(15))
	assert.Equal(t, analytics.TrendSignificantDecrease, th.Label(-20))
}

func TestCompare_Disminucion(t *testing.T) {
	c := analytics.Compare(statsFor(time.August, 2026, "40"), statsFor(time.July, 2026, "100"))
	assert.True(t, c.AbsoluteChange.Equal(dec("-60")))
	assert.InDelta(t, -60.0, c.UsageChangePct, 1e-9)
	assert.Equal(t, analytics.TrendSignificantDecrease, c.Trend)
}
