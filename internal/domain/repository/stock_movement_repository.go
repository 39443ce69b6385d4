package repository

import (
	"context"
	"time"

	"github.com/jhoicas/panastock-api/internal/domain/analytics"
	"github.com/jhoicas/panastock-api/internal/domain/entity"
)

// MovementFilter filtros del listado de movimientos. Type y DepartmentID
// vacíos significan "todos"; From/To acotan por fecha del movimiento.
type MovementFilter struct {
	Type         string
	DepartmentID string
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

// StockMovementRepository puerto de persistencia del libro de movimientos.
// Create y Delete se usan dentro de la transacción que ajusta el stock
// (repos atados a la tx); las consultas pueden ir directo al pool.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	GetByID(id string) (*entity.StockMovement, error)
	// List devuelve la página y el total sin paginar, orden fecha DESC.
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, int, error)
	Delete(id string) error

	// ListUsageEvents devuelve las líneas distribution de un producto en
	// [from, to), como eventos de consumo para la analítica.
	ListUsageEvents(ctx context.Context, productID string, from, to time.Time) ([]analytics.UsageEvent, error)
	// ListDistributionsAfter devuelve los movimientos distribution posteriores
	// a after que tocan alguno de los productos dados (chequeo de reversa).
	ListDistributionsAfter(ctx context.Context, productIDs []string, after time.Time) ([]*entity.StockMovement, error)
}
