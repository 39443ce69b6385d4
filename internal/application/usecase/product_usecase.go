package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panastock-api/internal/application/dto"
	"github.com/jhoicas/panastock-api/internal/domain"
	"github.com/jhoicas/panastock-api/internal/domain/inventory"
	"github.com/jhoicas/panastock-api/internal/domain/repository"
	"github.com/jhoicas/panastock-api/internal/domain/entity"
)

// ProductUseCase CRUD de catálogo. El stock vivo NO se edita por aquí: solo
// lo muta el motor de movimientos. El stock inicial opcional de Create pasa
// por el mismo parseo canónico de cantidades.
type ProductUseCase struct {
	productRepo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo}
}

// Create crea un producto de catálogo. Nombre duplicado es domain.ErrDuplicate
// (error estructurado, nunca un string centinela).
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if !inventory.IsCountUnit(in.Unit) && !inventory.IsContinuousUnit(in.Unit) {
		return nil, domain.ErrInvalidInput
	}
	if existing, _ := uc.productRepo.GetByName(in.Name); existing != nil {
		return nil, domain.ErrDuplicate
	}

	quantity := decimal.Zero
	if in.Quantity != "" {
		q, err := inventory.ParseQuantity(in.Quantity, in.Unit)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		quantity = q
	}
	unitPrice := decimal.Zero
	if in.UnitPrice != "" {
		p, err := decimal.NewFromString(in.UnitPrice)
		if err != nil || p.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		unitPrice = p
	}

	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Unit:      in.Unit,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// GetByID devuelve un producto (nil si no existe).
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// List lista el catálogo paginado.
func (uc *ProductUseCase) List(limit, offset int) ([]dto.ProductResponse, int, error) {
	products, total, err := uc.productRepo.List(limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return dto.FromProducts(products), total, nil
}

// Update actualiza nombre, unidad o precio. La cantidad no es editable.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil && *in.Name != "" {
		product.Name = *in.Name
	}
	if in.Unit != nil && *in.Unit != "" {
		if !inventory.IsCountUnit(*in.Unit) && !inventory.IsContinuousUnit(*in.Unit) {
			return nil, domain.ErrInvalidInput
		}
		product.Unit = *in.Unit
	}
	if in.UnitPrice != nil && *in.UnitPrice != "" {
		p, err := decimal.NewFromString(*in.UnitPrice)
		if err != nil || p.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.UnitPrice = p
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	out := dto.FromProduct(product)
	return &out, nil
}
