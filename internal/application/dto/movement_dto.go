package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panastock-api/internal/domain/entity"
)

// MovementLineRequest línea del body de POST /api/movements. Quantity llega
// como texto tal cual lo tecleó el usuario; lo interpreta únicamente el
// validador de movimientos.
type MovementLineRequest struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    string `json:"quantity"`
	Unit        string `json:"unit"`
	UnitPrice   string `json:"unitPrice,omitempty"` // solo stock_in
}

// CreateMovementRequest body de POST /api/movements.
// Date es opcional (por defecto ahora) y acepta ISO-8601 o {_seconds,...}.
type CreateMovementRequest struct {
	Type         string                `json:"type"`
	Supplier     string                `json:"supplier,omitempty"`
	Department   string                `json:"department,omitempty"` // ID del departamento
	StockManager string                `json:"stockManager"`
	Notes        string                `json:"notes,omitempty"`
	Date         *Timestamp            `json:"date,omitempty"`
	Products     []MovementLineRequest `json:"products"`
}

// ListMovementsRequest query params de GET /api/movements.
type ListMovementsRequest struct {
	Type       string `query:"type"`
	Department string `query:"department"`
	StartDate  string `query:"start_date"` // YYYY-MM-DD
	EndDate    string `query:"end_date"`   // YYYY-MM-DD
	Page       int    `query:"page"`
	Limit      int    `query:"limit"`
	Grouped    bool   `query:"grouped"` // agrupar por día calendario
}

// ProductLineDTO línea de movimiento en respuestas.
type ProductLineDTO struct {
	ProductID     string           `json:"productId"`
	ProductName   string           `json:"productName"`
	Quantity      decimal.Decimal  `json:"quantity"`
	Unit          string           `json:"unit"`
	UnitPrice     *decimal.Decimal `json:"unitPrice,omitempty"` // solo stock_in
	PreviousStock decimal.Decimal  `json:"previousStock"`
	NewStock      decimal.Decimal  `json:"newStock"`
}

// DepartmentRefDTO referencia de departamento dentro de un movimiento.
type DepartmentRefDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StockMovementDTO movimiento en respuestas.
type StockMovementDTO struct {
	ID           string            `json:"id"`
	Type         string            `json:"type"`
	Date         Timestamp         `json:"date"`
	StockManager string            `json:"stockManager"`
	Notes        string            `json:"notes,omitempty"`
	Supplier     string            `json:"supplier,omitempty"`
	Department   *DepartmentRefDTO `json:"department,omitempty"`
	Products     []ProductLineDTO  `json:"products"`
	TotalItems   decimal.Decimal   `json:"totalItems"`
	TotalValue   *decimal.Decimal  `json:"totalValue,omitempty"` // solo stock_in
}

// DayGroupDTO movimientos de un mismo día calendario (para la vista agrupada).
type DayGroupDTO struct {
	Date      string             `json:"date"` // YYYY-MM-DD local
	Movements []StockMovementDTO `json:"movements"`
}

// FromMovement mapea la entidad al DTO de respuesta.
func FromMovement(m *entity.StockMovement) StockMovementDTO {
	out := StockMovementDTO{
		ID:           m.ID,
		Type:         m.Type,
		Date:         Timestamp{Time: m.Date},
		StockManager: m.StockManager,
		Notes:        m.Notes,
		TotalItems:   m.TotalItems,
	}
	if m.IsStockIn() {
		out.Supplier = m.Supplier
		tv := m.TotalValue
		out.TotalValue = &tv
	} else {
		out.Department = &DepartmentRefDTO{ID: m.DepartmentID, Name: m.DepartmentName}
	}
	out.Products = make([]ProductLineDTO, 0, len(m.Lines))
	for _, l := range m.Lines {
		line := ProductLineDTO{
			ProductID:     l.ProductID,
			ProductName:   l.ProductName,
			Quantity:      l.Quantity,
			Unit:          l.Unit,
			PreviousStock: l.PreviousStock,
			NewStock:      l.NewStock,
		}
		if m.IsStockIn() {
			up := l.UnitPrice
			line.UnitPrice = &up
		}
		out.Products = append(out.Products, line)
	}
	return out
}

// FromMovements mapea un slice de entidades.
func FromMovements(ms []*entity.StockMovement) []StockMovementDTO {
	out := make([]StockMovementDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromMovement(m))
	}
	return out
}
