package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeStockIn      = "stock_in"     // entrada desde proveedor
	MovementTypeDistribution = "distribution" // salida hacia un departamento
)

// ProductLine es una línea de un movimiento: el delta aplicado a un producto
// con la foto del stock antes y después. UnitPrice solo aplica a stock_in.
type ProductLine struct {
	ProductID     string
	ProductName   string // snapshot del nombre al momento de crear el movimiento
	Quantity      decimal.Decimal
	Unit          string
	UnitPrice     decimal.Decimal
	PreviousStock decimal.Decimal
	NewStock      decimal.Decimal
}

// StockMovement representa un evento inmutable del libro de inventario.
// Es una variante etiquetada por Type: Supplier solo existe en stock_in y
// DepartmentID/DepartmentName solo en distribution; ningún lector debe
// sondear campos opcionales.
//
// Invariante por línea: NewStock = PreviousStock + Quantity (stock_in)
// o NewStock = PreviousStock - Quantity (distribution), con NewStock >= 0.
type StockMovement struct {
	ID             string
	Type           string
	Date           time.Time
	StockManager   string // usuario que ejecuta el movimiento (texto libre)
	Notes          string
	Supplier       string // solo stock_in
	DepartmentID   string // solo distribution
	DepartmentName string // snapshot, solo distribution
	Lines          []ProductLine
	TotalItems     decimal.Decimal
	TotalValue     decimal.Decimal // solo stock_in: sum(quantity * unit_price)
	CreatedAt      time.Time
	CreatedBy      string // UserID
}

// IsStockIn indica si el movimiento es una entrada de proveedor.
func (m *StockMovement) IsStockIn() bool { return m.Type == MovementTypeStockIn }

// IsDistribution indica si el movimiento es una salida a departamento.
func (m *StockMovement) IsDistribution() bool { return m.Type == MovementTypeDistribution }

// ComputeTotals recalcula TotalItems y TotalValue a partir de las líneas.
func (m *StockMovement) ComputeTotals() {
	items := decimal.Zero
	value := decimal.Zero
	for _, l := range m.Lines {
		items = items.Add(l.Quantity)
		if m.IsStockIn() {
			value = value.Add(l.Quantity.Mul(l.UnitPrice))
		}
	}
	m.TotalItems = items
	m.TotalValue = value
}
