package entity

import "time"

// Department representa un área de la panadería que recibe stock
// (Pastelería, Horno, Mostrador...). Icon y Color son solo presentación;
// la analítica no los usa. Nunca se crea implícitamente desde un movimiento.
type Department struct {
	ID        string
	Name      string
	Icon      string
	Color     string
	CreatedAt time.Time
}
