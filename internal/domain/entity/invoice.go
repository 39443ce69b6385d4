package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItem es una línea de factura. Subtotal = Quantity * UnitPrice.
type InvoiceItem struct {
	ProductID   string
	ProductName string
	Quantity    decimal.Decimal
	Unit        string
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// Invoice representa la cabecera de una factura de venta.
// Crear una factura descuenta el inventario registrando un movimiento
// distribution en la misma transacción (MovementID lo enlaza).
type Invoice struct {
	ID           string
	Number       string // consecutivo legible, ej. "FV-000123"
	CustomerID   string
	CustomerName string // snapshot
	DepartmentID string // punto de venta que despacha
	Items        []InvoiceItem
	Total        decimal.Decimal
	MovementID   string // movimiento distribution que descontó el stock
	CreatedAt    time.Time
	CreatedBy    string
}

// ComputeTotal recalcula subtotales de línea y el total de la factura.
func (inv *Invoice) ComputeTotal() {
	total := decimal.Zero
	for i := range inv.Items {
		inv.Items[i].Subtotal = inv.Items[i].Quantity.Mul(inv.Items[i].UnitPrice)
		total = total.Add(inv.Items[i].Subtotal)
	}
	inv.Total = total
}
