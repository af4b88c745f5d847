package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Part representa un repuesto del inventario del taller.
// PartNumber es la llave natural: única e inmutable una vez creada.
// Quantity es el stock en mano; solo el libro de stock (application/inventory) lo escribe,
// y el invariante Quantity >= 0 se sostiene en todo momento.
type Part struct {
	PartNumber string
	Name       string
	Supplier   string
	Quantity   int64
	Price      decimal.Decimal // precio unitario, nunca negativo
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
