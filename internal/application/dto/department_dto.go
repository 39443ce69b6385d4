package dto

import "github.com/jhoicas/panastock-api/internal/domain/entity"

// CreateDepartmentRequest body para POST /api/departments.
type CreateDepartmentRequest struct {
	Name  string `json:"name"`
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`
}

// DepartmentResponse departamento en respuestas.
type DepartmentResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon,omitempty"`
	Color string `json:"color,omitempty"`
}

// FromDepartment mapea la entidad al DTO.
func FromDepartment(d *entity.Department) DepartmentResponse {
	return DepartmentResponse{ID: d.ID, Name: d.Name, Icon: d.Icon, Color: d.Color}
}

// FromDepartments mapea un slice de entidades.
func FromDepartments(ds []*entity.Department) []DepartmentResponse {
	out := make([]DepartmentResponse, 0, len(ds))
	for _, d := range ds {
		out = append(out, FromDepartment(d))
	}
	return out
}
