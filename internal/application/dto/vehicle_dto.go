package dto

import "github.com/tu-usuario/taller-flota/internal/domain/entity"

// CreateVehicleRequest alta de un vehículo de la flota.
type CreateVehicleRequest struct {
	Name  string `json:"name"`
	VIN   string `json:"vin"`
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  int    `json:"year"`
}

// VehicleResponse representación de un vehículo en el API.
type VehicleResponse struct {
	Name  string `json:"name"`
	VIN   string `json:"vin"`
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  int    `json:"year"`
}

// VehicleToResponse mapea la entidad al DTO de salida.
func VehicleToResponse(v *entity.Vehicle) *VehicleResponse {
	return &VehicleResponse{
		Name:  v.Name,
		VIN:   v.VIN,
		Make:  v.Make,
		Model: v.Model,
		Year:  v.Year,
	}
}
