package repository

import (
	"context"

	"github.com/tu-usuario/taller-flota/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
// GetByUsername devuelve (nil, nil) cuando el usuario no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
}
