// Package analytics calcula estadísticas de consumo a partir del libro de
// movimientos (servicios de dominio puros, sin IO). Todo resultado es
// derivado: siempre recomputable desde el historial de movimientos.
package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// UsageEvent es un consumo individual: una línea distribution de un producto.
type UsageEvent struct {
	Date         time.Time
	QuantityUsed decimal.Decimal
	MovementID   string
	DepartmentID string
	UsedBy       string
}

// UsageStats agrega el consumo de un producto en un mes calendario.
//
// AverageDailyUsage y EstimatedDaysRemaining son tasas derivadas en float64;
// EstimatedDaysRemaining es +Inf cuando no hay consumo observado: el stock
// no se agota al ritmo actual.
type UsageStats struct {
	Period                 string // etiqueta legible, ej. "Agosto 2026"
	Month                  time.Month
	Year                   int
	TotalUsed              decimal.Decimal
	UsageCount             int
	AverageDailyUsage      float64
	DaysInMonth            int
	EstimatedDaysRemaining float64
	Events                 []UsageEvent // orden ascendente por fecha, para drill-down
}

// AggregateMonth calcula las UsageStats de un producto para un mes calendario.
// events puede traer el historial completo: solo se cuentan los que caen en
// [primerDíaDelMes, primerDíaDelMesSiguiente). currentStock es el stock vivo
// del producto y now define si el mes está en curso (divisor = días
// transcurridos, mínimo 1) o cerrado (divisor = días del mes).
func AggregateMonth(events []UsageEvent, month time.Month, year int, currentStock decimal.Decimal, now time.Time) UsageStats {
	loc := now.Location()
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)
	daysInMonth := end.AddDate(0, 0, -1).Day()

	total := decimal.Zero
	var inMonth []UsageEvent
	for _, ev := range events {
		d := ev.Date.In(loc)
		if d.Before(start) || !d.Before(end) {
			continue
		}
		total = total.Add(ev.QuantityUsed)
		inMonth = append(inMonth, ev)
	}
	sort.SliceStable(inMonth, func(i, j int) bool { return inMonth[i].Date.Before(inMonth[j].Date) })

	// Mes en curso: promediar sobre los días ya transcurridos (mínimo 1 para
	// no dividir por cero el día 1). Mes cerrado: sobre todos sus días.
	divisor := daysInMonth
	if now.Year() == year && now.Month() == month {
		divisor = now.Day()
		if divisor < 1 {
			divisor = 1
		}
	}

	avgDaily := total.InexactFloat64() / float64(divisor)

	estDays := math.Inf(1)
	if avgDaily > 0 {
		estDays = currentStock.InexactFloat64() / avgDaily
	}

	return UsageStats{
		Period:                 PeriodLabel(month, year),
		Month:                  month,
		Year:                   year,
		TotalUsed:              total,
		UsageCount:             len(inMonth),
		AverageDailyUsage:      avgDaily,
		DaysInMonth:            daysInMonth,
		EstimatedDaysRemaining: estDays,
		Events:                 inMonth,
	}
}

// PeriodLabel devuelve la etiqueta legible del período, ej. "Agosto 2026".
func PeriodLabel(month time.Month, year int) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[month-1], year)
}
