package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panastock-api/internal/domain/entity"
)

// ── Clientes ──────────────────────────────────────────────────────────────────

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name    string `json:"name"`
	TaxID   string `json:"taxId,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	TaxID   string `json:"taxId,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// FromCustomer mapea la entidad al DTO.
func FromCustomer(c *entity.Customer) CustomerResponse {
	return CustomerResponse{ID: c.ID, Name: c.Name, TaxID: c.TaxID, Email: c.Email, Phone: c.Phone, Address: c.Address}
}

// FromCustomers mapea un slice de entidades.
func FromCustomers(cs []*entity.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, FromCustomer(c))
	}
	return out
}

// ── Facturas ──────────────────────────────────────────────────────────────────

// InvoiceItemRequest línea del body de POST /api/invoices. Quantity llega
// como texto crudo igual que en los movimientos.
type InvoiceItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  string `json:"quantity"`
}

// CreateInvoiceRequest body para POST /api/invoices. DepartmentID indica el
// punto de venta que despacha (el movimiento distribution se registra ahí).
type CreateInvoiceRequest struct {
	CustomerID   string               `json:"customerId"`
	DepartmentID string               `json:"departmentId"`
	Items        []InvoiceItemRequest `json:"items"`
}

// InvoiceItemDTO línea de factura en respuestas.
type InvoiceItemDTO struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// InvoiceResponse factura en respuestas.
type InvoiceResponse struct {
	ID           string           `json:"id"`
	Number       string           `json:"number"`
	CustomerID   string           `json:"customerId"`
	CustomerName string           `json:"customerName"`
	DepartmentID string           `json:"departmentId"`
	Items        []InvoiceItemDTO `json:"items"`
	Total        decimal.Decimal  `json:"total"`
	MovementID   string           `json:"movementId"`
	CreatedAt    Timestamp        `json:"createdAt"`
}

// FromInvoice mapea la entidad al DTO.
func FromInvoice(inv *entity.Invoice) InvoiceResponse {
	items := make([]InvoiceItemDTO, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, InvoiceItemDTO{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Unit:        it.Unit,
			UnitPrice:   it.UnitPrice,
			Subtotal:    it.Subtotal,
		})
	}
	return InvoiceResponse{
		ID:           inv.ID,
		Number:       inv.Number,
		CustomerID:   inv.CustomerID,
		CustomerName: inv.CustomerName,
		DepartmentID: inv.DepartmentID,
		Items:        items,
		Total:        inv.Total,
		MovementID:   inv.MovementID,
		CreatedAt:    Timestamp{Time: inv.CreatedAt},
	}
}
