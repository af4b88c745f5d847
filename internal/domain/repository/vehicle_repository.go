package repository

import (
	"context"

	"github.com/tu-usuario/taller-flota/internal/domain/entity"
)

// VehicleRepository define el puerto de persistencia para Vehicle.
// GetByVIN devuelve (nil, nil) cuando el vehículo no existe.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *entity.Vehicle) error
	GetByVIN(ctx context.Context, vin string) (*entity.Vehicle, error)
	List(ctx context.Context) ([]*entity.Vehicle, error)
}
