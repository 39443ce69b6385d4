package analytics_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/panastock-api/internal/domain/analytics"
)

func TestSummarize_PromedioIncluyeCeros(t *testing.T) {
	current := statsFor(time.August, 2026, "30")
	previous := []analytics.UsageStats{
		statsFor(time.July, 2026, "0"), // mes sin consumo cuenta como 0
		statsFor(time.June, 2026, "60"),
	}

	s := analytics.Summarize(current, previous, dec("45"))

	assert.Equal(t, 3, s.TotalMonthsAnalyzed)
	assert.InDelta(t, 30.0, s.AverageMonthlyUsage, 1e-9) // (30+0+60)/3
	assert.Equal(t, "Junio 2026", s.HighestUsageMonth.Period)
	assert.Equal(t, "Julio 2026", s.LowestUsageMonth.Period)
	assert.InDelta(t, 1.5, s.EstimatedMonthsRemaining, 1e-9)
}

func TestSummarize_EmpateGanaElMasReciente(t *testing.T) {
	current := statsFor(time.August, 2026, "50")
	previous := []analytics.UsageStats{
		statsFor(time.July, 2026, "50"),
		statsFor(time.June, 2026, "50"),
	}

	s := analytics.Summarize(current, previous, dec("10"))

	assert.Equal(t, "Agosto 2026", s.HighestUsageMonth.Period)
	assert.Equal(t, "Agosto 2026", s.LowestUsageMonth.Period)
}

func TestSummarize_TendenciaGlobal(t *testing.T) {
	// La tendencia global es current contra el mes inmediatamente anterior.
	current := statsFor(time.August, 2026, "30")
	previous := []analytics.UsageStats{
		statsFor(time.July, 2026, "100"),
		statsFor(time.June, 2026, "10"),
	}

	s := analytics.Summarize(current, previous, dec("0"))
	assert.Equal(t, analytics.TrendSignificantDecrease, s.OverallTrend)
}

func TestSummarize_SinMesesPrevios(t *testing.T) {
	s := analytics.Summarize(statsFor(time.August, 2026, "20"), nil, dec("40"))

	assert.Equal(t, 1, s.TotalMonthsAnalyzed)
	assert.Equal(t, analytics.TrendStable, s.OverallTrend)
	assert.InDelta(t, 2.0, s.EstimatedMonthsRemaining, 1e-9)
}

func TestSummarize_PromedioCeroProyectaInfinito(t *testing.T) {
	current := statsFor(time.August, 2026, "0")
	previous := []analytics.UsageStats{statsFor(time.July, 2026, "0")}

	s := analytics.Summarize(current, previous, dec("80"))

	assert.Zero(t, s.AverageMonthlyUsage)
	assert.True(t, math.IsInf(s.EstimatedMonthsRemaining, 1))
	assert.True(t, s.CurrentStock.Equal(dec("80")))
}
