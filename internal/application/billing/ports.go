package billing

import (
	"context"

	"github.com/jhoicas/panastock-api/internal/application/movement"
	"github.com/jhoicas/panastock-api/internal/domain/entity"
	"github.com/jhoicas/panastock-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción que incluye
// repos de inventario y facturación.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}

// InventoryUseCase interfaz para integrar facturación con el motor de stock.
// DistributeInTx registra la distribución usando los repositorios del caller
// (misma transacción); si retorna error el caller hace rollback.
type InventoryUseCase interface {
	DistributeInTx(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		department *entity.Department,
		stockManager, notes, createdBy string,
		reqs []movement.DistributionLine,
	) (*entity.StockMovement, error)
}

// InvoicePDFGenerator genera la representación PDF de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, customer *entity.Customer) ([]byte, error)
}
