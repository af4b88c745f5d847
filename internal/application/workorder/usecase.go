// Package workorder implementa las órdenes de trabajo del taller: creación
// acoplada al consumo de stock y máquina de estados de avance estricto.
package workorder

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/taller-flota/internal/application/dto"
	"github.com/tu-usuario/taller-flota/internal/application/inventory"
	"github.com/tu-usuario/taller-flota/internal/domain"
	"github.com/tu-usuario/taller-flota/internal/domain/entity"
	"github.com/tu-usuario/taller-flota/internal/domain/repository"
)

// UseCase crea órdenes de trabajo y gobierna sus transiciones de estado.
// La creación corre en una sola transacción: o la orden existe y el stock quedó
// descontado, o no pasó nada. Los errores del libro de stock se propagan tal
// cual, sin traducirlos, para que el cliente sepa exactamente qué parte faltó.
type UseCase struct {
	txRunner      inventory.TxRunner
	ledger        *inventory.Ledger
	vehicleRepo   repository.VehicleRepository
	workOrderRepo repository.WorkOrderRepository
}

// NewUseCase construye el caso de uso de órdenes de trabajo.
func NewUseCase(
	txRunner inventory.TxRunner,
	ledger *inventory.Ledger,
	vehicleRepo repository.VehicleRepository,
	workOrderRepo repository.WorkOrderRepository,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		ledger:        ledger,
		vehicleRepo:   vehicleRepo,
		workOrderRepo: workOrderRepo,
	}
}

// Create valida la orden, consume el lote de partes y persiste la orden en
// estado Pending, todo dentro de una transacción.
//
// Validaciones previas a cualquier mutación (fail-fast):
//   - el VIN referencia un vehículo existente
//   - la descripción no es vacía
//   - cada item tiene cantidad > 0 y ninguna parte se repite
func (uc *UseCase) Create(ctx context.Context, in dto.CreateWorkOrderRequest) (*dto.WorkOrderResponse, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("la descripción es requerida: %w", domain.ErrInvalidInput)
	}
	if in.VehicleVIN == "" {
		return nil, fmt.Errorf("vehicle_vin es requerido: %w", domain.ErrInvalidInput)
	}

	vehicle, err := uc.vehicleRepo.GetByVIN(ctx, in.VehicleVIN)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, fmt.Errorf("vehículo con VIN %s no encontrado: %w", in.VehicleVIN, domain.ErrNotFound)
	}

	seen := make(map[string]struct{}, len(in.ItemsUsed))
	items := make([]entity.WorkOrderItem, 0, len(in.ItemsUsed))
	batch := make([]inventory.Item, 0, len(in.ItemsUsed))
	for _, it := range in.ItemsUsed {
		if it.PartNumber == "" {
			return nil, fmt.Errorf("part_number es requerido en items_used: %w", domain.ErrInvalidInput)
		}
		if it.QuantityUsed <= 0 {
			return nil, fmt.Errorf("quantity_used debe ser mayor que cero para la parte %s: %w", it.PartNumber, domain.ErrInvalidInput)
		}
		if _, dup := seen[it.PartNumber]; dup {
			return nil, fmt.Errorf("parte %s duplicada en la orden de trabajo: %w", it.PartNumber, domain.ErrInvalidInput)
		}
		seen[it.PartNumber] = struct{}{}
		items = append(items, entity.WorkOrderItem{PartNumber: it.PartNumber, QuantityUsed: it.QuantityUsed})
		batch = append(batch, inventory.Item{PartNumber: it.PartNumber, Quantity: it.QuantityUsed})
	}

	now := time.Now()
	order := &entity.WorkOrder{
		ID:          uuid.New().String(),
		VehicleVIN:  in.VehicleVIN,
		Description: in.Description,
		Status:      entity.StatusPending,
		ItemsUsed:   items,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Consumo del lote y alta de la orden en la misma transacción:
	// si el libro de stock rechaza el lote, la orden nunca existe.
	err = uc.txRunner.Run(ctx, func(
		partRepo repository.PartRepository,
		workOrderRepo repository.WorkOrderRepository,
	) error {
		if err := uc.ledger.ConsumeInTx(ctx, partRepo, batch); err != nil {
			return err
		}
		return workOrderRepo.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return dto.WorkOrderToResponse(order), nil
}

// UpdateStatus avanza el estado de una orden. Solo se acepta el sucesor
// inmediato del estado actual; Completed es terminal. La fila se bloquea dentro
// de la transacción, así que dos updates concurrentes sobre el mismo id se
// serializan: gana la primera transición válida y la otra recibe InvalidTransition.
func (uc *UseCase) UpdateStatus(ctx context.Context, id, newStatus string) (*dto.WorkOrderResponse, error) {
	status, ok := entity.ParseWorkOrderStatus(newStatus)
	if !ok {
		return nil, fmt.Errorf("estado desconocido %q: %w", newStatus, domain.ErrInvalidInput)
	}

	var updated *entity.WorkOrder
	err := uc.txRunner.Run(ctx, func(
		_ repository.PartRepository,
		workOrderRepo repository.WorkOrderRepository,
	) error {
		order, err := workOrderRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("orden de trabajo %s no encontrada: %w", id, domain.ErrNotFound)
		}
		if !order.Status.CanAdvanceTo(status) {
			return &domain.InvalidTransitionError{From: string(order.Status), To: string(status)}
		}
		if err := workOrderRepo.UpdateStatus(ctx, id, status); err != nil {
			return err
		}
		order.Status = status
		order.UpdatedAt = time.Now()
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.WorkOrderToResponse(updated), nil
}

// GetByID devuelve una orden por id.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*dto.WorkOrderResponse, error) {
	order, err := uc.workOrderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("orden de trabajo %s no encontrada: %w", id, domain.ErrNotFound)
	}
	return dto.WorkOrderToResponse(order), nil
}

// List devuelve todas las órdenes de trabajo.
func (uc *UseCase) List(ctx context.Context) ([]*dto.WorkOrderResponse, error) {
	orders, err := uc.workOrderRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.WorkOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, dto.WorkOrderToResponse(o))
	}
	return out, nil
}
