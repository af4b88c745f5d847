// Package memory implementa la capa de persistencia en memoria: los mismos
// puertos de internal/domain/repository que la implementación PostgreSQL, sobre
// mapas protegidos por un RWMutex. Se usa con DB_DRIVER=memory (demo y
// desarrollo sin base de datos) y como fixture de los tests de aplicación.
package memory

import (
	"sync"

	"github.com/tu-usuario/taller-flota/internal/domain/entity"
)

// Store estado compartido de los repositorios en memoria.
// Los slices *Order conservan el orden de inserción para listados estables.
type Store struct {
	mu sync.RWMutex

	parts     map[string]*entity.Part
	partOrder []string

	vehicles     map[string]*entity.Vehicle
	vehicleOrder []string

	locations []*entity.Location

	workOrders     map[string]*entity.WorkOrder
	workOrderOrder []string

	users map[string]*entity.User
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		parts:      make(map[string]*entity.Part),
		vehicles:   make(map[string]*entity.Vehicle),
		workOrders: make(map[string]*entity.WorkOrder),
		users:      make(map[string]*entity.User),
	}
}

// snapshot copia el estado que una transacción puede mutar: partes y órdenes.
// El caller debe tener el lock exclusivo.
type snapshot struct {
	parts          map[string]*entity.Part
	partOrder      []string
	workOrders     map[string]*entity.WorkOrder
	workOrderOrder []string
}

func (s *Store) takeSnapshot() snapshot {
	snap := snapshot{
		parts:          make(map[string]*entity.Part, len(s.parts)),
		partOrder:      append([]string(nil), s.partOrder...),
		workOrders:     make(map[string]*entity.WorkOrder, len(s.workOrders)),
		workOrderOrder: append([]string(nil), s.workOrderOrder...),
	}
	for k, p := range s.parts {
		snap.parts[k] = clonePart(p)
	}
	for k, o := range s.workOrders {
		snap.workOrders[k] = cloneWorkOrder(o)
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.parts = snap.parts
	s.partOrder = snap.partOrder
	s.workOrders = snap.workOrders
	s.workOrderOrder = snap.workOrderOrder
}

// Clones: los repositorios nunca devuelven punteros al estado interno,
// así una mutación del caller no puede saltarse el libro de stock.

func clonePart(p *entity.Part) *entity.Part {
	c := *p
	return &c
}

func cloneVehicle(v *entity.Vehicle) *entity.Vehicle {
	c := *v
	return &c
}

func cloneWorkOrder(o *entity.WorkOrder) *entity.WorkOrder {
	c := *o
	c.ItemsUsed = append([]entity.WorkOrderItem(nil), o.ItemsUsed...)
	return &c
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	return &c
}
