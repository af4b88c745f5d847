package repository

import "context"

// DashboardCounts agregados del dashboard, calculados siempre desde el estado fuente de verdad.
type DashboardCounts struct {
	TotalParts     int64
	LowStockParts  int64
	TotalVehicles  int64
	OpenWorkOrders int64
}

// StatsRepository define el puerto de lectura para los agregados del dashboard.
// lowStockThreshold es la política configurada: cuenta partes con quantity < threshold.
// Cada llamada recalcula desde cero; no hay contadores materializados que puedan derivar.
type StatsRepository interface {
	DashboardCounts(ctx context.Context, lowStockThreshold int64) (*DashboardCounts, error)
}
