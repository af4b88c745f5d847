package entity

// Location representa una ubicación de almacenamiento (bodega, garaje).
// Entidad hoja: listable de forma independiente, sin relaciones modeladas.
type Location struct {
	ID   int64
	Name string
}
