package dto

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/taller-flota/internal/domain/entity"
)

// CreatePartRequest alta de un repuesto en el inventario.
type CreatePartRequest struct {
	Name       string          `json:"name"`
	PartNumber string          `json:"part_number"`
	Supplier   string          `json:"supplier"`
	Quantity   int64           `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
}

// PartResponse representación de una parte en el API.
type PartResponse struct {
	Name       string          `json:"name"`
	PartNumber string          `json:"part_number"`
	Supplier   string          `json:"supplier"`
	Quantity   int64           `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
}

// PartToResponse mapea la entidad al DTO de salida.
func PartToResponse(p *entity.Part) *PartResponse {
	return &PartResponse{
		Name:       p.Name,
		PartNumber: p.PartNumber,
		Supplier:   p.Supplier,
		Quantity:   p.Quantity,
		Price:      p.Price,
	}
}
