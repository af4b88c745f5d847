package repository

import (
	"context"

	"github.com/tu-usuario/taller-flota/internal/domain/entity"
)

// WorkOrderRepository define el puerto de persistencia para WorkOrder.
// Los Get devuelven (nil, nil) cuando la orden no existe.
// GetByIDForUpdate bloquea la fila para serializar cambios de estado concurrentes sobre el mismo id.
type WorkOrderRepository interface {
	Create(ctx context.Context, order *entity.WorkOrder) error
	GetByID(ctx context.Context, id string) (*entity.WorkOrder, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.WorkOrder, error)
	UpdateStatus(ctx context.Context, id string, status entity.WorkOrderStatus) error
	List(ctx context.Context) ([]*entity.WorkOrder, error)
}
