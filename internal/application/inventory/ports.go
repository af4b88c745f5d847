package inventory

import (
	"context"

	"github.com/tu-usuario/taller-flota/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de la capa de persistencia,
// pasando repositorios atados a esa transacción. Si fn devuelve error se hace rollback
// y el estado queda exactamente como estaba; si no, commit.
// Garantiza la atomicidad del libro de stock y de la creación de órdenes de trabajo.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		partRepo repository.PartRepository,
		workOrderRepo repository.WorkOrderRepository,
	) error) error
}
