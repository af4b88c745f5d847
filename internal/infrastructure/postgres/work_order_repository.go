package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/taller-flota/internal/domain"
	"github.com/tu-usuario/taller-flota/internal/domain/entity"
	"github.com/tu-usuario/taller-flota/internal/domain/repository"
)

var _ repository.WorkOrderRepository = (*WorkOrderRepo)(nil)

// WorkOrderRepo implementación de WorkOrderRepository sobre PostgreSQL.
// Los items viven en work_order_items con una columna position que conserva el
// orden de inserción para presentación.
type WorkOrderRepo struct {
	q Querier
}

// NewWorkOrderRepository construye el adaptador de órdenes de trabajo. Pasar pool o tx (Querier).
func NewWorkOrderRepository(q Querier) *WorkOrderRepo {
	return &WorkOrderRepo{q: q}
}

// Create persiste la orden y sus items. Pensado para ejecutarse dentro de la
// transacción que también descuenta el stock.
func (r *WorkOrderRepo) Create(ctx context.Context, order *entity.WorkOrder) error {
	query := `
		INSERT INTO work_orders (id, vehicle_vin, description, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.VehicleVIN, order.Description, string(order.Status),
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("orden de trabajo %s ya existe: %w", order.ID, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert work order: %w", err)
	}
	for i, it := range order.ItemsUsed {
		_, err := r.q.Exec(ctx, `
			INSERT INTO work_order_items (work_order_id, part_number, quantity_used, position)
			VALUES ($1, $2, $3, $4)`,
			order.ID, it.PartNumber, it.QuantityUsed, i,
		)
		if err != nil {
			return fmt.Errorf("insert work order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una orden con sus items. Devuelve (nil, nil) si no existe.
func (r *WorkOrderRepo) GetByID(ctx context.Context, id string) (*entity.WorkOrder, error) {
	return r.get(ctx, id, false)
}

// GetByIDForUpdate obtiene la orden y bloquea la fila (SELECT FOR UPDATE) para
// serializar cambios de estado concurrentes sobre el mismo id.
func (r *WorkOrderRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.WorkOrder, error) {
	return r.get(ctx, id, true)
}

func (r *WorkOrderRepo) get(ctx context.Context, id string, forUpdate bool) (*entity.WorkOrder, error) {
	query := `
		SELECT id, vehicle_vin, description, status, created_at, updated_at
		FROM work_orders WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var o entity.WorkOrder
	var status string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.VehicleVIN, &o.Description, &status, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get work order: %w", err)
	}
	o.Status = entity.WorkOrderStatus(status)

	items, err := r.loadItems(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	o.ItemsUsed = items[id]
	return &o, nil
}

// UpdateStatus fija el estado de la orden. La validación de la transición ocurre
// en el caso de uso, bajo el bloqueo de fila de GetByIDForUpdate.
func (r *WorkOrderRepo) UpdateStatus(ctx context.Context, id string, status entity.WorkOrderStatus) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE work_orders SET status = $2, updated_at = now() WHERE id = $1`,
		id, string(status),
	)
	if err != nil {
		return fmt.Errorf("update work order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("orden de trabajo %s no encontrada: %w", id, domain.ErrNotFound)
	}
	return nil
}

// List devuelve todas las órdenes con sus items, más recientes primero.
func (r *WorkOrderRepo) List(ctx context.Context) ([]*entity.WorkOrder, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, vehicle_vin, description, status, created_at, updated_at
		FROM work_orders ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list work orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.WorkOrder
	var ids []string
	for rows.Next() {
		var o entity.WorkOrder
		var status string
		if err := rows.Scan(&o.ID, &o.VehicleVIN, &o.Description, &status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan work order: %w", err)
		}
		o.Status = entity.WorkOrderStatus(status)
		list = append(list, &o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, o := range list {
		o.ItemsUsed = items[o.ID]
	}
	return list, nil
}

// loadItems trae los items de un conjunto de órdenes en una sola consulta,
// agrupados por orden y en su posición original.
func (r *WorkOrderRepo) loadItems(ctx context.Context, ids []string) (map[string][]entity.WorkOrderItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT work_order_id, part_number, quantity_used
		FROM work_order_items
		WHERE work_order_id = ANY($1)
		ORDER BY work_order_id, position`, ids)
	if err != nil {
		return nil, fmt.Errorf("load work order items: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]entity.WorkOrderItem, len(ids))
	for rows.Next() {
		var orderID string
		var it entity.WorkOrderItem
		if err := rows.Scan(&orderID, &it.PartNumber, &it.QuantityUsed); err != nil {
			return nil, fmt.Errorf("scan work order item: %w", err)
		}
		out[orderID] = append(out[orderID], it)
	}
	return out, rows.Err()
}
