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

// PartUseCase altas y listados de repuestos. La cantidad solo se fija aquí en la
// creación; después de eso la escribe únicamente el libro de stock.
type PartUseCase struct {
	repo repository.PartRepository
}

// NewPartUseCase construye el caso de uso.
func NewPartUseCase(repo repository.PartRepository) *PartUseCase {
	return &PartUseCase{repo: repo}
}

// Create da de alta un repuesto. Falla con ErrDuplicate si el part_number ya
// existe y con ErrInvalidInput si la cantidad o el precio son negativos.
func (uc *PartUseCase) Create(ctx context.Context, in dto.CreatePartRequest) (*dto.PartResponse, error) {
	if in.PartNumber == "" || in.Name == "" {
		return nil, fmt.Errorf("part_number y name son requeridos: %w", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("quantity no puede ser negativa: %w", domain.ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("price no puede ser negativo: %w", domain.ErrInvalidInput)
	}
	now := time.Now()
	part := &entity.Part{
		PartNumber: in.PartNumber,
		Name:       in.Name,
		Supplier:   in.Supplier,
		Quantity:   in.Quantity,
		Price:      in.Price,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, part); err != nil {
		return nil, err
	}
	return dto.PartToResponse(part), nil
}

// List devuelve todas las partes del inventario.
func (uc *PartUseCase) List(ctx context.Context) ([]*dto.PartResponse, error) {
	parts, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PartResponse, 0, len(parts))
	for _, p := range parts {
		out = append(out, dto.PartToResponse(p))
	}
	return out, nil
}

// Get obtiene una parte por su part_number.
func (uc *PartUseCase) Get(ctx context.Context, partNumber string) (*dto.PartResponse, error) {
	part, err := uc.repo.GetByNumber(ctx, partNumber)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, &domain.PartNotFoundError{PartNumber: partNumber}
	}
	return dto.PartToResponse(part), nil
}
