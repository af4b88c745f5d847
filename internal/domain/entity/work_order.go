package entity

import "time"

// WorkOrderStatus estado de una orden de trabajo. Los valores son los que viajan por el API.
type WorkOrderStatus string

// Ciclo de vida de una orden: Pending -> In Progress -> Completed.
// El avance es estrictamente de un paso; Completed es terminal.
const (
	StatusPending    WorkOrderStatus = "Pending"
	StatusInProgress WorkOrderStatus = "In Progress"
	StatusCompleted  WorkOrderStatus = "Completed"
)

// ParseWorkOrderStatus valida un estado recibido por el API.
func ParseWorkOrderStatus(s string) (WorkOrderStatus, bool) {
	switch WorkOrderStatus(s) {
	case StatusPending, StatusInProgress, StatusCompleted:
		return WorkOrderStatus(s), true
	}
	return "", false
}

// Next devuelve el sucesor inmediato del estado; ok es false si el estado es terminal.
func (s WorkOrderStatus) Next() (WorkOrderStatus, bool) {
	switch s {
	case StatusPending:
		return StatusInProgress, true
	case StatusInProgress:
		return StatusCompleted, true
	}
	return "", false
}

// CanAdvanceTo reporta si la transición s -> next es legal.
// Solo se permite el sucesor inmediato: sin saltos ni regresiones.
func (s WorkOrderStatus) CanAdvanceTo(next WorkOrderStatus) bool {
	n, ok := s.Next()
	return ok && n == next
}

// IsOpen reporta si la orden cuenta como abierta para el dashboard (todo lo que no es Completed).
func (s WorkOrderStatus) IsOpen() bool {
	return s != StatusCompleted
}

// WorkOrderItem consumo de una parte dentro de una orden (objeto valor, sin identidad propia).
// Una parte aparece a lo sumo una vez por orden; QuantityUsed siempre es > 0.
type WorkOrderItem struct {
	PartNumber   string
	QuantityUsed int64
}

// WorkOrder representa una orden de trabajo de mantenimiento sobre un vehículo.
// ItemsUsed queda fijo en la creación; el orden de inserción se conserva para presentación.
type WorkOrder struct {
	ID          string
	VehicleVIN  string
	Description string
	Status      WorkOrderStatus
	ItemsUsed   []WorkOrderItem
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
