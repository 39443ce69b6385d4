package movement

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ReasonKind clasifica una razón de rechazo de validación.
type ReasonKind string

// Clases de razón de validación.
const (
	ReasonEmptyLines        ReasonKind = "empty_lines"
	ReasonMissingProduct    ReasonKind = "missing_product"
	ReasonMissingUnit       ReasonKind = "missing_unit"
	ReasonInvalidQuantity   ReasonKind = "invalid_quantity"
	ReasonMissingSupplier   ReasonKind = "missing_supplier"
	ReasonMissingDepartment ReasonKind = "missing_department"
	ReasonInvalidType       ReasonKind = "invalid_type"
	ReasonInsufficientStock ReasonKind = "insufficient_stock"
)

// LineReason una razón de rechazo correlacionable con la fila del formulario.
type LineReason struct {
	ProductName string
	Kind        ReasonKind
	Message     string
}

// ValidationError rechazo de un movimiento con TODAS las razones de la
// categoría que falló, no solo la primera: un único round-trip basta para
// corregir el formulario completo.
type ValidationError struct {
	Reasons []LineReason
}

// Error implementa error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("movimiento inválido: %s", strings.Join(e.Messages(), "; "))
}

// Messages devuelve las razones legibles, una por producto ofendido.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Reasons))
	for _, r := range e.Reasons {
		msgs = append(msgs, r.Message)
	}
	return msgs
}

// ReversalConflict un producto cuyo stock quedaría negativo al revertir un
// stock_in, junto con los movimientos posteriores que consumieron ese stock.
type ReversalConflict struct {
	ProductID   string
	ProductName string
	Available   decimal.Decimal
	ToReverse   decimal.Decimal
	ConsumedBy  []string // IDs de movimientos distribution en conflicto
}

// ReversalError rechazo de un borrado porque revertir el movimiento dejaría
// stock negativo. Nombra cada producto ofendido y los movimientos que ya
// consumieron el stock a retirar.
type ReversalError struct {
	MovementID string
	Conflicts  []ReversalConflict
}

// Error implementa error.
func (e *ReversalError) Error() string {
	return fmt.Sprintf("no se puede eliminar el movimiento %s: %s", e.MovementID, strings.Join(e.Messages(), "; "))
}

// Messages una razón legible por producto en conflicto.
func (e *ReversalError) Messages() []string {
	msgs := make([]string, 0, len(e.Conflicts))
	for _, c := range e.Conflicts {
		msg := fmt.Sprintf("%s: revertir %s unidades dejaría el stock en negativo (disponibles %s)",
			c.ProductName, c.ToReverse.String(), c.Available.String())
		if len(c.ConsumedBy) > 0 {
			msg += fmt.Sprintf("; consumido por movimientos %s", strings.Join(c.ConsumedBy, ", "))
		}
		msgs = append(msgs, msg)
	}
	return msgs
}
