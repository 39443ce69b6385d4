package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"
	RolePanadero = "panadero" // registra entradas y distribuciones
	RoleVendedor = "vendedor" // solo factura y consulta
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}
