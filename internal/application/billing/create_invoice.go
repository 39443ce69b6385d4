package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/panastock-api/internal/application/dto"
	"github.com/jhoicas/panastock-api/internal/application/movement"
	"github.com/jhoicas/panastock-api/internal/domain"
	"github.com/jhoicas/panastock-api/internal/domain/entity"
	"github.com/jhoicas/panastock-api/internal/domain/inventory"
	"github.com/jhoicas/panastock-api/internal/domain/repository"
)

// CreateInvoiceUseCase crea la factura y descuenta el inventario en la misma
// transacción: o queda la factura con su movimiento distribution, o nada.
type CreateInvoiceUseCase struct {
	txRunner       BillingTxRunner
	inventory      InventoryUseCase
	productRepo    repository.ProductRepository
	departmentRepo repository.DepartmentRepository
	customerRepo   repository.CustomerRepository
	invoiceRepo    repository.InvoiceRepository
}

// NewCreateInvoiceUseCase construye el caso de uso.
func NewCreateInvoiceUseCase(
	txRunner BillingTxRunner,
	inventory InventoryUseCase,
	productRepo repository.ProductRepository,
	departmentRepo repository.DepartmentRepository,
	customerRepo repository.CustomerRepository,
	invoiceRepo repository.InvoiceRepository,
) *CreateInvoiceUseCase {
	return &CreateInvoiceUseCase{
		txRunner:       txRunner,
		inventory:      inventory,
		productRepo:    productRepo,
		departmentRepo: departmentRepo,
		customerRepo:   customerRepo,
		invoiceRepo:    invoiceRepo,
	}
}

// Execute valida el request, arma los ítems con los precios vigentes del
// catálogo y dentro de la transacción registra la distribución y persiste la
// factura con su consecutivo.
func (uc *CreateInvoiceUseCase) Execute(ctx context.Context, in dto.CreateInvoiceRequest, createdBy string) (*entity.Invoice, error) {
	if in.CustomerID == "" || in.DepartmentID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("resolver cliente: %w", err)
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	department, err := uc.departmentRepo.GetByID(in.DepartmentID)
	if err != nil {
		return nil, fmt.Errorf("resolver departamento: %w", err)
	}
	if department == nil {
		return nil, domain.ErrNotFound
	}

	// Resolver productos y parsear cantidades fuera de la transacción; el
	// stock real se re-chequea sobre filas bloqueadas en DistributeInTx.
	items := make([]entity.InvoiceItem, 0, len(in.Items))
	distLines := make([]movement.DistributionLine, 0, len(in.Items))
	for _, it := range in.Items {
		product, err := uc.productRepo.GetByID(it.ProductID)
		if err != nil {
			return nil, fmt.Errorf("resolver producto %s: %w", it.ProductID, err)
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		qty, err := inventory.ParseQuantity(it.Quantity, product.Unit)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", product.Name, domain.ErrInvalidInput)
		}
		items = append(items, entity.InvoiceItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    qty,
			Unit:        product.Unit,
			UnitPrice:   product.UnitPrice,
		})
		distLines = append(distLines, movement.DistributionLine{ProductID: product.ID, Quantity: qty})
	}

	invoice := &entity.Invoice{
		ID:           uuid.New().String(),
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		DepartmentID: department.ID,
		Items:        items,
		CreatedAt:    time.Now(),
		CreatedBy:    createdBy,
	}
	invoice.ComputeTotal()

	err = uc.txRunner.RunBilling(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
		invoiceRepo repository.InvoiceRepository,
	) error {
		notes := fmt.Sprintf("Venta a %s", customer.Name)
		mov, err := uc.inventory.DistributeInTx(movRepo, productRepo, department, createdBy, notes, createdBy, distLines)
		if err != nil {
			return err
		}
		invoice.MovementID = mov.ID

		number, err := invoiceRepo.NextNumber()
		if err != nil {
			return err
		}
		invoice.Number = number
		return invoiceRepo.Create(invoice)
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// GetByID carga una factura.
func (uc *CreateInvoiceUseCase) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}
