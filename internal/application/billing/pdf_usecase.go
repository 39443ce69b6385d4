package billing

import (
	"context"

	"github.com/jhoicas/panastock-api/internal/domain"
	"github.com/jhoicas/panastock-api/internal/domain/repository"
)

// PDFUseCase genera el PDF de una factura existente.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	generator    InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{invoiceRepo: invoiceRepo, customerRepo: customerRepo, generator: generator}
}

// GenerateInvoicePDF carga factura y cliente y delega en el generador.
func (uc *PDFUseCase) GenerateInvoicePDF(ctx context.Context, invoiceID string) ([]byte, error) {
	invoice, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.customerRepo.GetByID(invoice.CustomerID)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateInvoicePDF(ctx, invoice, customer)
}
