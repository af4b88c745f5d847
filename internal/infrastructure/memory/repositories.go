package memory

import (
	"context"
	"fmt"

	"github.com/tu-usuario/taller-flota/internal/domain"
	"github.com/tu-usuario/taller-flota/internal/domain/entity"
	"github.com/tu-usuario/taller-flota/internal/domain/repository"
)

// Los repositorios llevan un flag inTx: fuera de transacción toman el lock del
// store en cada método; dentro de una transacción el lock ya lo tiene TxRunner
// y volver a tomarlo interbloquearía.

var (
	_ repository.PartRepository      = (*PartRepo)(nil)
	_ repository.VehicleRepository   = (*VehicleRepo)(nil)
	_ repository.LocationRepository  = (*LocationRepo)(nil)
	_ repository.WorkOrderRepository = (*WorkOrderRepo)(nil)
	_ repository.UserRepository      = (*UserRepo)(nil)
	_ repository.StatsRepository     = (*StatsRepo)(nil)
)

// ── Parts ─────────────────────────────────────────────────────────────────────

// PartRepo implementación en memoria de PartRepository.
type PartRepo struct {
	store *Store
	inTx  bool
}

// NewPartRepository construye el repositorio de partes (modo standalone, con locks).
func NewPartRepository(store *Store) *PartRepo {
	return &PartRepo{store: store}
}

func (r *PartRepo) Create(ctx context.Context, part *entity.Part) error {
	if !r.inTx {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	if _, exists := r.store.parts[part.PartNumber]; exists {
		return fmt.Errorf("parte %s ya existe: %w", part.PartNumber, domain.ErrDuplicate)
	}
	r.store.parts[part.PartNumber] = clonePart(part)
	r.store.partOrder = append(r.store.partOrder, part.PartNumber)
	return nil
}

func (r *PartRepo) GetByNumber(ctx context.Context, partNumber string) (*entity.Part, error) {
	if !r.inTx {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	p, ok := r.store.parts[partNumber]
	if !ok {
		return nil, nil
	}
	return clonePart(p), nil
}

// GetByNumberForUpdate en memoria equivale a GetByNumber: el lock exclusivo de
// la transacción ya excluye a cualquier otro lote.
func (r *PartRepo) GetByNumberForUpdate(ctx context.Context, partNumber string) (*entity.Part, error) {
	return r.GetByNumber(ctx, partNumber)
}

func (r *PartRepo) UpdateQuantity(ctx context.Context, partNumber string, quantity int64) error {
	if !r.inTx {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	p, ok := r.store.parts[partNumber]
	if !ok {
		return &domain.PartNotFoundError{PartNumber: partNumber}
	}
	p.Quantity = quantity
	return nil
}

func (r *PartRepo) List(ctx context.Context) ([]*entity.Part, error) {
	if !r.inTx {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	out := make([]*entity.Part, 0, len(r.store.partOrder))
	for _, pn := range r.store.partOrder {
		out = append(out, clonePart(r.store.parts[pn]))
	}
	return out, nil
}

// ── Vehicles ──────────────────────────────────────────────────────────────────

// VehicleRepo implementación en memoria de VehicleRepository.
type VehicleRepo struct {
	store *Store
}

// NewVehicleRepository construye el repositorio de vehículos.
func NewVehicleRepository(store *Store) *VehicleRepo {
	return &VehicleRepo{store: store}
}

func (r *VehicleRepo) Create(ctx context.Context, vehicle *entity.Vehicle) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.vehicles[vehicle.VIN]; exists {
		return fmt.Errorf("vehículo con VIN %s ya existe: %w", vehicle.VIN, domain.ErrDuplicate)
	}
	r.store.vehicles[vehicle.VIN] = cloneVehicle(vehicle)
	r.store.vehicleOrder = append(r.store.vehicleOrder, vehicle.VIN)
	return nil
}

func (r *VehicleRepo) GetByVIN(ctx context.Context, vin string) (*entity.Vehicle, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	v, ok := r.store.vehicles[vin]
	if !ok {
		return nil, nil
	}
	return cloneVehicle(v), nil
}

func (r *VehicleRepo) List(ctx context.Context) ([]*entity.Vehicle, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]*entity.Vehicle, 0, len(r.store.vehicleOrder))
	for _, vin := range r.store.vehicleOrder {
		out = append(out, cloneVehicle(r.store.vehicles[vin]))
	}
	return out, nil
}

// ── Locations ─────────────────────────────────────────────────────────────────

// LocationRepo implementación en memoria de LocationRepository.
type LocationRepo struct {
	store *Store
}

// NewLocationRepository construye el repositorio de ubicaciones.
func NewLocationRepository(store *Store) *LocationRepo {
	return &LocationRepo{store: store}
}

func (r *LocationRepo) List(ctx context.Context) ([]*entity.Location, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]*entity.Location, 0, len(r.store.locations))
	for _, l := range r.store.locations {
		c := *l
		out = append(out, &c)
	}
	return out, nil
}

// ── Work orders ───────────────────────────────────────────────────────────────

// WorkOrderRepo implementación en memoria de WorkOrderRepository.
type WorkOrderRepo struct {
	store *Store
	inTx  bool
}

// NewWorkOrderRepository construye el repositorio de órdenes de trabajo.
func NewWorkOrderRepository(store *Store) *WorkOrderRepo {
	return &WorkOrderRepo{store: store}
}

func (r *WorkOrderRepo) Create(ctx context.Context, order *entity.WorkOrder) error {
	if !r.inTx {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	if _, exists := r.store.workOrders[order.ID]; exists {
		return fmt.Errorf("orden de trabajo %s ya existe: %w", order.ID, domain.ErrDuplicate)
	}
	r.store.workOrders[order.ID] = cloneWorkOrder(order)
	r.store.workOrderOrder = append(r.store.workOrderOrder, order.ID)
	return nil
}

func (r *WorkOrderRepo) GetByID(ctx context.Context, id string) (*entity.WorkOrder, error) {
	if !r.inTx {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	o, ok := r.store.workOrders[id]
	if !ok {
		return nil, nil
	}
	return cloneWorkOrder(o), nil
}

func (r *WorkOrderRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.WorkOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *WorkOrderRepo) UpdateStatus(ctx context.Context, id string, status entity.WorkOrderStatus) error {
	if !r.inTx {
		r.store.mu.Lock()
		defer r.store.mu.Unlock()
	}
	o, ok := r.store.workOrders[id]
	if !ok {
		return fmt.Errorf("orden de trabajo %s no encontrada: %w", id, domain.ErrNotFound)
	}
	o.Status = status
	return nil
}

func (r *WorkOrderRepo) List(ctx context.Context) ([]*entity.WorkOrder, error) {
	if !r.inTx {
		r.store.mu.RLock()
		defer r.store.mu.RUnlock()
	}
	out := make([]*entity.WorkOrder, 0, len(r.store.workOrderOrder))
	for _, id := range r.store.workOrderOrder {
		out = append(out, cloneWorkOrder(r.store.workOrders[id]))
	}
	return out, nil
}

// ── Users ─────────────────────────────────────────────────────────────────────

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	store *Store
}

// NewUserRepository construye el repositorio de usuarios.
func NewUserRepository(store *Store) *UserRepo {
	return &UserRepo{store: store}
}

func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.users[user.Username]; exists {
		return fmt.Errorf("usuario %s ya existe: %w", user.Username, domain.ErrDuplicate)
	}
	r.store.users[user.Username] = cloneUser(user)
	return nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	u, ok := r.store.users[username]
	if !ok {
		return nil, nil
	}
	return cloneUser(u), nil
}

// ── Stats ─────────────────────────────────────────────────────────────────────

// StatsRepo agregados del dashboard sobre el store en memoria.
type StatsRepo struct {
	store *Store
}

// NewStatsRepository construye el adaptador de agregados.
func NewStatsRepository(store *Store) *StatsRepo {
	return &StatsRepo{store: store}
}

// DashboardCounts recorre el estado actual bajo el read lock; el conteo nunca
// puede observar una transacción a medias porque las transacciones mutan bajo
// el lock exclusivo.
func (r *StatsRepo) DashboardCounts(ctx context.Context, lowStockThreshold int64) (*repository.DashboardCounts, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var c repository.DashboardCounts
	c.TotalParts = int64(len(r.store.parts))
	for _, p := range r.store.parts {
		if p.Quantity < lowStockThreshold {
			c.LowStockParts++
		}
	}
	c.TotalVehicles = int64(len(r.store.vehicles))
	for _, o := range r.store.workOrders {
		if o.Status.IsOpen() {
			c.OpenWorkOrders++
		}
	}
	return &c, nil
}
