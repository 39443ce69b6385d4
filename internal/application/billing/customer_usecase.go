package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/panastock-api/internal/application/dto"
	"github.com/jhoicas/panastock-api/internal/domain"
	"github.com/jhoicas/panastock-api/internal/domain/entity"
	"github.com/jhoicas/panastock-api/internal/domain/repository"
)

// CustomerUseCase CRUD de clientes.
type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(customerRepo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo}
}

// Create crea un cliente.
func (uc *CustomerUseCase) Create(in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		TaxID:     in.TaxID,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	out := dto.FromCustomer(customer)
	return &out, nil
}

// List lista clientes paginados.
func (uc *CustomerUseCase) List(limit, offset int) ([]dto.CustomerResponse, int, error) {
	customers, total, err := uc.customerRepo.List(limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return dto.FromCustomers(customers), total, nil
}
