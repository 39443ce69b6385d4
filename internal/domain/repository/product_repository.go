package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panastock-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para productos.
//
// GetForUpdate y UpdateQuantity solo tienen sentido dentro de una transacción
// (repos atados a la tx vía TxRunner): GetForUpdate bloquea la fila del
// producto (SELECT FOR UPDATE) para serializar el read-modify-write del stock.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByName(name string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, int, error)
	Update(product *entity.Product) error
	GetForUpdate(id string) (*entity.Product, error)
	UpdateQuantity(id string, quantity decimal.Decimal) error
}
