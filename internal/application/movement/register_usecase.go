package movement

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panastock-api/internal/application/dto"
	"github.com/jhoicas/panastock-api/internal/domain"
	"github.com/jhoicas/panastock-api/internal/domain/entity"
	"github.com/jhoicas/panastock-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de stock de forma transaccional
// (stock_in, distribution) con bloqueo de fila por producto (SELECT FOR
// UPDATE) y Commit/Rollback. Es el único componente que muta Product.Quantity.
type RegisterMovementUseCase struct {
	txRunner       TxRunner
	productRepo    repository.ProductRepository
	departmentRepo repository.DepartmentRepository
	now            func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	departmentRepo repository.DepartmentRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:       txRunner,
		productRepo:    productRepo,
		departmentRepo: departmentRepo,
		now:            time.Now,
	}
}

// Register valida el borrador, aplica los deltas de stock y persiste el
// movimiento con las fotos previousStock/newStock de cada línea. Atómico:
// si cualquier línea falla, ni el movimiento ni ningún ajuste de producto
// se persisten. Devuelve el movimiento materializado (con totales).
func (uc *RegisterMovementUseCase) Register(ctx context.Context, in dto.CreateMovementRequest, createdBy string) (*entity.StockMovement, error) {
	draft, err := uc.resolveDraft(in)
	if err != nil {
		return nil, err
	}
	if err := Validate(draft); err != nil {
		return nil, err
	}

	date := uc.now()
	if in.Date != nil && !in.Date.Time.IsZero() {
		date = in.Date.Time
	}

	mov := &entity.StockMovement{
		ID:           uuid.New().String(),
		Type:         draft.Type,
		Date:         date,
		StockManager: draft.StockManager,
		Notes:        draft.Notes,
		Supplier:     draft.Supplier,
		CreatedAt:    uc.now(),
		CreatedBy:    createdBy,
	}
	if draft.Department != nil {
		mov.DepartmentID = draft.Department.ID
		mov.DepartmentName = draft.Department.Name
	}

	lines := make([]resolvedLine, 0, len(draft.Lines))
	for _, l := range draft.Lines {
		lines = append(lines, resolvedLine{
			productID: l.ProductID,
			quantity:  l.Quantity,
			unit:      l.Unit,
			unitPrice: l.UnitPrice,
		})
	}

	// Transacción: bloquear filas de producto, re-validar stock contra las
	// filas bloqueadas, aplicar deltas y persistir todo junto.
	err = uc.txRunner.Run(ctx, func(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository) error {
		return applyLines(movRepo, productRepo, mov, lines)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// DistributeInTx registra una distribución usando los repositorios del caller
// (misma transacción): integración facturación→inventario. El caller debe
// estar dentro de un TxRunner.Run.
func (uc *RegisterMovementUseCase) DistributeInTx(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	department *entity.Department,
	stockManager, notes, createdBy string,
	reqs []DistributionLine,
) (*entity.StockMovement, error) {
	if department == nil {
		return nil, domain.ErrNotFound
	}
	if len(reqs) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	mov := &entity.StockMovement{
		ID:             uuid.New().String(),
		Type:           entity.MovementTypeDistribution,
		Date:           now,
		StockManager:   stockManager,
		Notes:          notes,
		DepartmentID:   department.ID,
		DepartmentName: department.Name,
		CreatedAt:      now,
		CreatedBy:      createdBy,
	}
	lines := make([]resolvedLine, 0, len(reqs))
	for _, r := range reqs {
		if !r.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		lines = append(lines, resolvedLine{productID: r.ProductID, quantity: r.Quantity})
	}
	if err := applyLines(movRepo, productRepo, mov, lines); err != nil {
		return nil, err
	}
	return mov, nil
}

// DistributionLine línea mínima para DistributeInTx.
type DistributionLine struct {
	ProductID string
	Quantity  decimal.Decimal
}

// resolveDraft resuelve productos y departamento del request (lecturas fuera
// de la transacción; la verdad final se re-chequea sobre filas bloqueadas).
func (uc *RegisterMovementUseCase) resolveDraft(in dto.CreateMovementRequest) (*Draft, error) {
	draft := &Draft{
		Type:         in.Type,
		Supplier:     in.Supplier,
		StockManager: in.StockManager,
		Notes:        in.Notes,
	}

	if in.Type == entity.MovementTypeDistribution && in.Department != "" {
		dept, err := uc.departmentRepo.GetByID(in.Department)
		if err != nil {
			return nil, fmt.Errorf("resolver departamento: %w", err)
		}
		draft.Department = dept // nil si no existe: lo reporta el validador
	}

	for _, p := range in.Products {
		line := DraftLine{
			ProductID:   p.ProductID,
			ProductName: p.ProductName,
			RawQuantity: p.Quantity,
			Unit:        p.Unit,
		}
		if p.ProductID != "" {
			product, err := uc.productRepo.GetByID(p.ProductID)
			if err != nil {
				return nil, fmt.Errorf("resolver producto %s: %w", p.ProductID, err)
			}
			line.Product = product
			if product != nil {
				if line.Unit == "" {
					line.Unit = product.Unit
				}
				line.UnitPrice = product.UnitPrice
			}
		}
		if in.Type == entity.MovementTypeStockIn && p.UnitPrice != "" {
			price, err := decimal.NewFromString(p.UnitPrice)
			if err != nil || price.IsNegative() {
				return nil, &ValidationError{Reasons: []LineReason{{
					ProductName: p.ProductName,
					Kind:        ReasonInvalidQuantity,
					Message:     fmt.Sprintf("%s: precio unitario inválido %q", p.ProductName, p.UnitPrice),
				}}}
			}
			line.UnitPrice = price
		}
		draft.Lines = append(draft.Lines, line)
	}
	return draft, nil
}

// resolvedLine línea lista para aplicar dentro de la transacción.
type resolvedLine struct {
	productID string
	quantity  decimal.Decimal
	unit      string
	unitPrice decimal.Decimal
}

// applyLines es el corazón del libro de stock: bloquea cada producto en orden
// de ID (evita deadlocks entre movimientos que comparten productos), re-valida
// el stock de las distribuciones contra las filas bloqueadas (cierra la
// carrera validación→aplicación), calcula previousStock/newStock por línea,
// actualiza las cantidades vivas y persiste el movimiento. Todo dentro de la
// transacción del caller: cualquier error revierte el movimiento completo.
func applyLines(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	mov *entity.StockMovement,
	lines []resolvedLine,
) error {
	// Bloquear en orden fijo por productID
	ids := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.productID]; !ok {
			seen[l.productID] = struct{}{}
			ids = append(ids, l.productID)
		}
	}
	sort.Strings(ids)

	locked := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		p, err := productRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		locked[id] = p
	}

	// Aplicar línea a línea sobre las cantidades bloqueadas. running acumula
	// los deltas de líneas anteriores del mismo movimiento sobre un producto.
	running := make(map[string]decimal.Decimal, len(ids))
	for id, p := range locked {
		running[id] = p.Quantity
	}

	var shortages []LineReason
	entLines := make([]entity.ProductLine, 0, len(lines))
	for _, l := range lines {
		p := locked[l.productID]
		prev := running[l.productID]

		var next decimal.Decimal
		if mov.IsStockIn() {
			next = prev.Add(l.quantity)
		} else {
			next = prev.Sub(l.quantity)
			if next.IsNegative() {
				shortages = append(shortages, LineReason{
					ProductName: p.Name,
					Kind:        ReasonInsufficientStock,
					Message: fmt.Sprintf("%s: stock insuficiente (disponibles %s, solicitados %s)",
						p.Name, prev.String(), l.quantity.String()),
				})
				continue
			}
		}
		running[l.productID] = next

		unit := l.unit
		if unit == "" {
			unit = p.Unit
		}
		price := l.unitPrice
		if mov.IsStockIn() && price.IsZero() {
			price = p.UnitPrice
		}
		entLines = append(entLines, entity.ProductLine{
			ProductID:     l.productID,
			ProductName:   p.Name,
			Quantity:      l.quantity,
			Unit:          unit,
			UnitPrice:     price,
			PreviousStock: prev,
			NewStock:      next,
		})
	}
	if len(shortages) > 0 {
		// Stock cambió entre la validación y el bloqueo: rechazo completo,
		// nunca aplicación parcial. El caller reintenta el movimiento entero.
		return &ValidationError{Reasons: shortages}
	}

	for _, id := range ids {
		if err := productRepo.UpdateQuantity(id, running[id]); err != nil {
			return err
		}
	}

	mov.Lines = entLines
	mov.ComputeTotals()
	return movRepo.Create(mov)
}
