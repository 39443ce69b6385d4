package repository

import "github.com/jhoicas/panastock-api/internal/domain/entity"

// DepartmentRepository puerto de persistencia para departamentos.
type DepartmentRepository interface {
	Create(department *entity.Department) error
	GetByID(id string) (*entity.Department, error)
	List() ([]*entity.Department, error)
}
