package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/panastock-api/internal/domain/entity"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name      string `json:"name"`
	Unit      string `json:"unit"`
	Quantity  string `json:"quantity,omitempty"` // stock inicial opcional, texto crudo
	UnitPrice string `json:"unitPrice,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id.
// El stock NO se actualiza por aquí: solo lo muta el motor de movimientos.
type UpdateProductRequest struct {
	Name      *string `json:"name,omitempty"`
	Unit      *string `json:"unit,omitempty"`
	UnitPrice *string `json:"unitPrice,omitempty"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	CreatedAt Timestamp       `json:"createdAt"`
	UpdatedAt Timestamp       `json:"updatedAt"`
}

// FromProduct mapea la entidad al DTO.
func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Unit:      p.Unit,
		Quantity:  p.Quantity,
		UnitPrice: p.UnitPrice,
		CreatedAt: Timestamp{Time: p.CreatedAt},
		UpdatedAt: Timestamp{Time: p.UpdatedAt},
	}
}

// FromProducts mapea un slice de entidades.
func FromProducts(ps []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromProduct(p))
	}
	return out
}
