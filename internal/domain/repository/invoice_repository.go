package repository

import "github.com/jhoicas/panastock-api/internal/domain/entity"

// InvoiceRepository puerto de persistencia para facturas.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	// NextNumber reserva el siguiente consecutivo de factura.
	NextNumber() (string, error)
}
