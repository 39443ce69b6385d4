package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de la panadería.
// Quantity es el stock vivo y lo muta exclusivamente el motor de movimientos
// (nunca un handler ni un caso de uso de catálogo).
type Product struct {
	ID        string
	Name      string
	Unit      string          // unidad de medida: "units", "loaves", "kg", "liter", etc.
	Quantity  decimal.Decimal // stock actual, nunca negativo
	UnitPrice decimal.Decimal // precio de compra por unidad
	CreatedAt time.Time
	UpdatedAt time.Time
}
