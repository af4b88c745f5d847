// Package analytics contiene el motor de agregación del dashboard.
//
// Los agregados se recalculan desde el estado fuente de verdad en cada llamada
// (lectura directa, sin contadores materializados): un contador mantenido a
// mano puede derivar respecto al libro de stock y a las órdenes; un COUNT no.
package analytics

import (
	"context"
	"fmt"

	"github.com/tu-usuario/taller-flota/internal/application/dto"
	"github.com/tu-usuario/taller-flota/internal/domain/repository"
)

// DashboardUseCase calcula las estadísticas del dashboard.
type DashboardUseCase struct {
	statsRepo         repository.StatsRepository
	lowStockThreshold int64 // política configurada: quantity < threshold => stock bajo
}

// NewDashboardUseCase construye el caso de uso con el umbral de stock bajo configurado.
func NewDashboardUseCase(statsRepo repository.StatsRepository, lowStockThreshold int64) *DashboardUseCase {
	return &DashboardUseCase{statsRepo: statsRepo, lowStockThreshold: lowStockThreshold}
}

// GetStats devuelve los agregados del momento de la llamada: total de partes,
// partes con stock bajo, total de vehículos y órdenes de trabajo abiertas
// (todo estado distinto de Completed).
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	counts, err := uc.statsRepo.DashboardCounts(ctx, uc.lowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}
	return &dto.DashboardStatsResponse{
		TotalParts:     counts.TotalParts,
		LowStockParts:  counts.LowStockParts,
		TotalVehicles:  counts.TotalVehicles,
		OpenWorkOrders: counts.OpenWorkOrders,
	}, nil
}
