package repository

import (
	"context"

	"github.com/tu-usuario/taller-flota/internal/domain/entity"
)

// PartRepository define el puerto de persistencia para Part (DIP).
// Los Get devuelven (nil, nil) cuando la parte no existe.
// GetByNumberForUpdate bloquea la fila (SELECT FOR UPDATE) y solo tiene sentido dentro de una transacción.
type PartRepository interface {
	Create(ctx context.Context, part *entity.Part) error
	GetByNumber(ctx context.Context, partNumber string) (*entity.Part, error)
	GetByNumberForUpdate(ctx context.Context, partNumber string) (*entity.Part, error)
	UpdateQuantity(ctx context.Context, partNumber string, quantity int64) error
	List(ctx context.Context) ([]*entity.Part, error)
}
