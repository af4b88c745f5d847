package dto

// DashboardStatsResponse respuesta de GET /api/v1/dashboard-stats.
// Siempre recalculada desde el estado actual; nunca servida desde un contador cacheado.
type DashboardStatsResponse struct {
	TotalParts     int64 `json:"total_parts"`
	LowStockParts  int64 `json:"low_stock_parts"`
	TotalVehicles  int64 `json:"total_vehicles"`
	OpenWorkOrders int64 `json:"open_work_orders"`
}
