package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/taller-flota/internal/application/dto"
	"github.com/tu-usuario/taller-flota/internal/domain"
	"github.com/tu-usuario/taller-flota/internal/domain/entity"
	"github.com/tu-usuario/taller-flota/internal/domain/repository"
)

// VehicleUseCase altas y listados de vehículos de la flota.
type VehicleUseCase struct {
	repo repository.VehicleRepository
}

// NewVehicleUseCase construye el caso de uso.
func NewVehicleUseCase(repo repository.VehicleRepository) *VehicleUseCase {
	return &VehicleUseCase{repo: repo}
}

// Create da de alta un vehículo. Falla con ErrDuplicate si el VIN ya existe y
// con ErrInvalidInput si faltan campos o el año no es positivo.
func (uc *VehicleUseCase) Create(ctx context.Context, in dto.CreateVehicleRequest) (*dto.VehicleResponse, error) {
	if in.VIN == "" || in.Name == "" || in.Make == "" || in.Model == "" {
		return nil, fmt.Errorf("vin, name, make y model son requeridos: %w", domain.ErrInvalidInput)
	}
	if in.Year <= 0 {
		return nil, fmt.Errorf("year debe ser positivo: %w", domain.ErrInvalidInput)
	}
	now := time.Now()
	vehicle := &entity.Vehicle{
		VIN:       in.VIN,
		Name:      in.Name,
		Make:      in.Make,
		Model:     in.Model,
		Year:      in.Year,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return dto.VehicleToResponse(vehicle), nil
}

// List devuelve todos los vehículos de la flota.
func (uc *VehicleUseCase) List(ctx context.Context) ([]*dto.VehicleResponse, error) {
	vehicles, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, dto.VehicleToResponse(v))
	}
	return out, nil
}
