package dto

import "github.com/tu-usuario/taller-flota/internal/domain/entity"

// WorkOrderItemDTO consumo de una parte dentro de una orden de trabajo.
type WorkOrderItemDTO struct {
	PartNumber   string `json:"part_number"`
	QuantityUsed int64  `json:"quantity_used"`
}

// CreateWorkOrderRequest creación de una orden de trabajo.
// Los items quedan fijos en la creación; no hay operación para ampliarlos después.
type CreateWorkOrderRequest struct {
	VehicleVIN  string             `json:"vehicle_vin"`
	Description string             `json:"description"`
	ItemsUsed   []WorkOrderItemDTO `json:"items_used"`
}

// UpdateWorkOrderStatusRequest avance de estado de una orden.
type UpdateWorkOrderStatusRequest struct {
	Status string `json:"status"`
}

// WorkOrderResponse representación de una orden de trabajo en el API.
type WorkOrderResponse struct {
	ID          string             `json:"id"`
	VehicleVIN  string             `json:"vehicle_vin"`
	Description string             `json:"description"`
	Status      string             `json:"status"`
	ItemsUsed   []WorkOrderItemDTO `json:"items_used"`
}

// WorkOrderToResponse mapea la entidad al DTO de salida conservando el orden de los items.
func WorkOrderToResponse(o *entity.WorkOrder) *WorkOrderResponse {
	items := make([]WorkOrderItemDTO, 0, len(o.ItemsUsed))
	for _, it := range o.ItemsUsed {
		items = append(items, WorkOrderItemDTO{PartNumber: it.PartNumber, QuantityUsed: it.QuantityUsed})
	}
	return &WorkOrderResponse{
		ID:          o.ID,
		VehicleVIN:  o.VehicleVIN,
		Description: o.Description,
		Status:      string(o.Status),
		ItemsUsed:   items,
	}
}
