// Package inventory contiene servicios de dominio puros del inventario:
// clases de unidad de medida y el parseo canónico de cantidades.
//
// Todo parseo de cantidades crudas pasa por ParseQuantity; ningún otro
// componente vuelve a interpretar strings numéricos.
package inventory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Unidades discretas: la cantidad debe ser un entero.
var countUnits = map[string]struct{}{
	"units":   {},
	"pieces":  {},
	"pcs":     {},
	"loaves":  {},
	"cakes":   {},
	"bottles": {},
	"packs":   {},
}

// Unidades continuas: la cantidad admite fracción (máx. 2 decimales).
var continuousUnits = map[string]struct{}{
	"kg":    {},
	"g":     {},
	"lb":    {},
	"oz":    {},
	"liter": {},
	"l":     {},
}

// Errores de parseo de cantidad.
var (
	ErrEmptyQuantity       = errors.New("cantidad vacía")
	ErrMalformedQuantity   = errors.New("cantidad mal formada")
	ErrQuantityNotPositive = errors.New("la cantidad debe ser mayor que cero")
	ErrFractionalCount     = errors.New("la unidad discreta exige cantidad entera")
	ErrTooManyDecimals     = errors.New("máximo dos decimales")
	ErrUnknownUnit         = errors.New("unidad de medida desconocida")
)

// IsCountUnit indica si la unidad es discreta (conteo).
func IsCountUnit(unit string) bool {
	_, ok := countUnits[strings.ToLower(strings.TrimSpace(unit))]
	return ok
}

// IsContinuousUnit indica si la unidad es continua (peso/volumen).
func IsContinuousUnit(unit string) bool {
	_, ok := continuousUnits[strings.ToLower(strings.TrimSpace(unit))]
	return ok
}

// ParseQuantity convierte una cantidad cruda (texto del formulario) a decimal
// validando el formato contra la clase numérica de la unidad.
//
// Reglas:
//   - se acepta coma o punto como separador decimal, pero solo UN separador;
//   - cualquier carácter no numérico restante invalida la entrada (nunca se
//     coacciona silenciosamente a 0);
//   - unidades discretas exigen entero; continuas admiten hasta 2 decimales;
//   - el resultado debe ser estrictamente positivo.
func ParseQuantity(raw, unit string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, ErrEmptyQuantity
	}

	// Normalizar coma decimal a punto. Más de un separador (en cualquier
	// combinación) es un formato ambiguo y se rechaza.
	seps := strings.Count(s, ".") + strings.Count(s, ",")
	if seps > 1 {
		return decimal.Zero, fmt.Errorf("%w: múltiples separadores decimales en %q", ErrMalformedQuantity, raw)
	}
	s = strings.ReplaceAll(s, ",", ".")

	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	if !isDigits(intPart) || (hasFrac && !isDigits(fracPart)) {
		return decimal.Zero, fmt.Errorf("%w: %q no es un número", ErrMalformedQuantity, raw)
	}
	if intPart == "" && fracPart == "" {
		return decimal.Zero, fmt.Errorf("%w: %q no es un número", ErrMalformedQuantity, raw)
	}

	q, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrMalformedQuantity, raw)
	}
	if !q.IsPositive() {
		return decimal.Zero, ErrQuantityNotPositive
	}

	switch {
	case IsCountUnit(unit):
		if !q.IsInteger() {
			return decimal.Zero, fmt.Errorf("%w (%s)", ErrFractionalCount, unit)
		}
	case IsContinuousUnit(unit):
		if q.Exponent() < -2 {
			return decimal.Zero, fmt.Errorf("%w (%s)", ErrTooManyDecimals, unit)
		}
	default:
		return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownUnit, unit)
	}
	return q, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
