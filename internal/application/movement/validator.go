package movement

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panastock-api/internal/domain/entity"
	"github.com/jhoicas/panastock-api/internal/domain/inventory"
)

// DraftLine línea de un borrador de movimiento. Product viene resuelto por
// el caso de uso (nil si el ID no existe); Quantity la rellena el validador
// tras el parseo canónico.
type DraftLine struct {
	ProductID   string
	ProductName string
	RawQuantity string
	Unit        string
	Product     *entity.Product
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal // solo stock_in
}

// Draft borrador de movimiento con referencias ya resueltas.
type Draft struct {
	Type         string
	Supplier     string
	Department   *entity.Department // resuelto, nil si no existe
	StockManager string
	Notes        string
	Lines        []DraftLine
}

// Validate valida el borrador sin efectos secundarios. Las categorías se
// comprueban en orden y la primera que falla corta, pero dentro de una
// categoría se recogen TODAS las fallas de línea:
//
//  1. lista de productos no vacía;
//  2. cada línea con producto resuelto, cantidad presente y unidad;
//  3. formato de la cantidad acorde a la clase de la unidad (parseo canónico);
//  4. supplier para stock_in / departamento para distribution;
//  5. para distribution, stock suficiente por línea.
//
// Como efecto de salida única rellena Quantity en cada línea parseada.
func Validate(d *Draft) error {
	// 1. Lista no vacía
	if len(d.Lines) == 0 {
		return &ValidationError{Reasons: []LineReason{{
			Kind:    ReasonEmptyLines,
			Message: "el movimiento no tiene productos",
		}}}
	}

	// 2. Campos de línea presentes y producto resuelto
	var reasons []LineReason
	for i := range d.Lines {
		l := &d.Lines[i]
		name := lineName(l, i)
		if l.ProductID == "" || l.Product == nil {
			reasons = append(reasons, LineReason{
				ProductName: name,
				Kind:        ReasonMissingProduct,
				Message:     fmt.Sprintf("%s: producto no encontrado", name),
			})
		}
		if l.RawQuantity == "" {
			reasons = append(reasons, LineReason{
				ProductName: name,
				Kind:        ReasonInvalidQuantity,
				Message:     fmt.Sprintf("%s: cantidad requerida", name),
			})
		}
		if l.Unit == "" {
			reasons = append(reasons, LineReason{
				ProductName: name,
				Kind:        ReasonMissingUnit,
				Message:     fmt.Sprintf("%s: unidad requerida", name),
			})
		}
	}
	if len(reasons) > 0 {
		return &ValidationError{Reasons: reasons}
	}

	// 3. Formato de cantidad vs clase de unidad (parseo centralizado)
	for i := range d.Lines {
		l := &d.Lines[i]
		q, err := inventory.ParseQuantity(l.RawQuantity, l.Unit)
		if err != nil {
			reasons = append(reasons, LineReason{
				ProductName: lineName(l, i),
				Kind:        ReasonInvalidQuantity,
				Message:     fmt.Sprintf("%s: %v", lineName(l, i), err),
			})
			continue
		}
		l.Quantity = q
	}
	if len(reasons) > 0 {
		return &ValidationError{Reasons: reasons}
	}

	// 4. Cabecera según el tipo (variante etiquetada)
	switch d.Type {
	case entity.MovementTypeStockIn:
		if d.Supplier == "" {
			return &ValidationError{Reasons: []LineReason{{
				Kind:    ReasonMissingSupplier,
				Message: "stock_in requiere proveedor",
			}}}
		}
	case entity.MovementTypeDistribution:
		if d.Department == nil {
			return &ValidationError{Reasons: []LineReason{{
				Kind:    ReasonMissingDepartment,
				Message: "distribution requiere un departamento válido",
			}}}
		}
	default:
		return &ValidationError{Reasons: []LineReason{{
			Kind:    ReasonInvalidType,
			Message: fmt.Sprintf("tipo de movimiento desconocido %q", d.Type),
		}}}
	}

	// 5. Stock suficiente por línea (solo distribution); una razón por
	// producto corto para que la app resalte la fila exacta.
	if d.Type == entity.MovementTypeDistribution {
		for i := range d.Lines {
			l := &d.Lines[i]
			if l.Product.Quantity.LessThan(l.Quantity) {
				reasons = append(reasons, LineReason{
					ProductName: l.Product.Name,
					Kind:        ReasonInsufficientStock,
					Message: fmt.Sprintf("%s: stock insuficiente (disponibles %s, solicitados %s)",
						l.Product.Name, l.Product.Quantity.String(), l.Quantity.String()),
				})
			}
		}
		if len(reasons) > 0 {
			return &ValidationError{Reasons: reasons}
		}
	}

	return nil
}

func lineName(l *DraftLine, idx int) string {
	if l.Product != nil && l.Product.Name != "" {
		return l.Product.Name
	}
	if l.ProductName != "" {
		return l.ProductName
	}
	return fmt.Sprintf("línea %d", idx+1)
}
