package repository

import (
	"context"

	"github.com/tu-usuario/taller-flota/internal/domain/entity"
)

// LocationRepository define el puerto de lectura para Location (entidad hoja, solo listable).
type LocationRepository interface {
	List(ctx context.Context) ([]*entity.Location, error)
}
