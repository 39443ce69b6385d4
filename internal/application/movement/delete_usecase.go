package movement

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/panastock-api/internal/domain"
	"github.com/jhoicas/panastock-api/internal/domain/entity"
	"github.com/jhoicas/panastock-api/internal/domain/repository"
)

// DeleteMovementUseCase elimina un movimiento revirtiendo su delta de stock.
//
// Eliminar un stock_in cuyo stock agregado ya fue consumido (total o
// parcialmente) por distribuciones posteriores dejaría productos en negativo;
// ese caso se re-deriva dentro de la transacción y se rechaza con un
// ReversalError que nombra cada producto ofendido y los movimientos en
// conflicto, nunca se omite la reversión en silencio.
type DeleteMovementUseCase struct {
	txRunner TxRunner
}

// NewDeleteMovementUseCase construye el caso de uso.
func NewDeleteMovementUseCase(txRunner TxRunner) *DeleteMovementUseCase {
	return &DeleteMovementUseCase{txRunner: txRunner}
}

// Delete elimina el movimiento id tras revertir su efecto sobre el stock.
// Revertir una distribution devuelve stock (siempre seguro); revertir un
// stock_in retira stock y exige quantity - línea >= 0 por producto.
func (uc *DeleteMovementUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(movRepo repository.StockMovementRepository, productRepo repository.ProductRepository) error {
		mov, err := movRepo.GetByID(id)
		if err != nil {
			return err
		}
		if mov == nil {
			return domain.ErrNotFound
		}

		// Bloquear productos en orden fijo, igual que al registrar.
		ids := make([]string, 0, len(mov.Lines))
		seen := make(map[string]struct{}, len(mov.Lines))
		for _, l := range mov.Lines {
			if _, ok := seen[l.ProductID]; !ok {
				seen[l.ProductID] = struct{}{}
				ids = append(ids, l.ProductID)
			}
		}
		sort.Strings(ids)

		locked := make(map[string]*entity.Product, len(ids))
		running := make(map[string]decimal.Decimal, len(ids))
		for _, pid := range ids {
			p, err := productRepo.GetForUpdate(pid)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.ErrNotFound
			}
			locked[pid] = p
			running[pid] = p.Quantity
		}

		// Re-derivar si la reversión es segura.
		var conflicts []ReversalConflict
		for _, l := range mov.Lines {
			if mov.IsStockIn() {
				next := running[l.ProductID].Sub(l.Quantity)
				if next.IsNegative() {
					conflicts = append(conflicts, ReversalConflict{
						ProductID:   l.ProductID,
						ProductName: l.ProductName,
						Available:   running[l.ProductID],
						ToReverse:   l.Quantity,
					})
					continue
				}
				running[l.ProductID] = next
			} else {
				running[l.ProductID] = running[l.ProductID].Add(l.Quantity)
			}
		}

		if len(conflicts) > 0 {
			// Nombrar los movimientos posteriores que consumieron el stock
			// que se intenta retirar.
			short := make([]string, 0, len(conflicts))
			for _, c := range conflicts {
				short = append(short, c.ProductID)
			}
			consumers, err := movRepo.ListDistributionsAfter(ctx, short, mov.Date)
			if err != nil {
				return err
			}
			byProduct := make(map[string][]string)
			for _, m := range consumers {
				for _, l := range m.Lines {
					byProduct[l.ProductID] = append(byProduct[l.ProductID], m.ID)
				}
			}
			for i := range conflicts {
				conflicts[i].ConsumedBy = byProduct[conflicts[i].ProductID]
			}
			return &ReversalError{MovementID: mov.ID, Conflicts: conflicts}
		}

		for _, pid := range ids {
			if err := productRepo.UpdateQuantity(pid, running[pid]); err != nil {
				return err
			}
		}
		return movRepo.Delete(mov.ID)
	})
}
