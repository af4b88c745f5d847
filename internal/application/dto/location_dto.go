package dto

import "github.com/tu-usuario/taller-flota/internal/domain/entity"

// LocationResponse representación de una ubicación de almacenamiento en el API.
type LocationResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// LocationToResponse mapea la entidad al DTO de salida.
func LocationToResponse(l *entity.Location) *LocationResponse {
	return &LocationResponse{ID: l.ID, Name: l.Name}
}
