package usecase

import (
	"context"

	"github.com/tu-usuario/taller-flota/internal/application/dto"
	"github.com/tu-usuario/taller-flota/internal/domain/repository"
)

// LocationUseCase listado de ubicaciones de almacenamiento.
type LocationUseCase struct {
	repo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo}
}

// List devuelve todas las ubicaciones.
func (uc *LocationUseCase) List(ctx context.Context) ([]*dto.LocationResponse, error) {
	locations, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LocationResponse, 0, len(locations))
	for _, l := range locations {
		out = append(out, dto.LocationToResponse(l))
	}
	return out, nil
}
