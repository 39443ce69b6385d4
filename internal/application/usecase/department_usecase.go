package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/panastock-api/internal/application/dto"
	"github.com/jhoicas/panastock-api/internal/domain"
	"github.com/jhoicas/panastock-api/internal/domain/entity"
	"github.com/jhoicas/panastock-api/internal/domain/repository"
)

// DepartmentUseCase CRUD de departamentos. Los departamentos solo se crean
// aquí, nunca implícitamente desde un movimiento.
type DepartmentUseCase struct {
	departmentRepo repository.DepartmentRepository
}

// NewDepartmentUseCase construye el caso de uso.
func NewDepartmentUseCase(departmentRepo repository.DepartmentRepository) *DepartmentUseCase {
	return &DepartmentUseCase{departmentRepo: departmentRepo}
}

// Create crea un departamento.
func (uc *DepartmentUseCase) Create(in dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	dept := &entity.Department{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Icon:      in.Icon,
		Color:     in.Color,
		CreatedAt: time.Now(),
	}
	if err := uc.departmentRepo.Create(dept); err != nil {
		return nil, err
	}
	out := dto.FromDepartment(dept)
	return &out, nil
}

// GetByID devuelve un departamento (nil si no existe).
func (uc *DepartmentUseCase) GetByID(id string) (*dto.DepartmentResponse, error) {
	dept, err := uc.departmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if dept == nil {
		return nil, nil
	}
	out := dto.FromDepartment(dept)
	return &out, nil
}

// List lista todos los departamentos.
func (uc *DepartmentUseCase) List() ([]dto.DepartmentResponse, error) {
	depts, err := uc.departmentRepo.List()
	if err != nil {
		return nil, err
	}
	return dto.FromDepartments(depts), nil
}
