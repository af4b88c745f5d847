package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tu-usuario/taller-flota/internal/domain/entity"
	"github.com/tu-usuario/taller-flota/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas de solo lectura para los agregados del dashboard.
type StatsRepo struct {
	pool *pgxpool.Pool
}

// NewStatsRepository construye el adaptador de agregados.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

// DashboardCounts recalcula los cuatro agregados en una sola consulta.
// Los COUNT van directo contra las tablas fuente de verdad; no hay contadores
// materializados que puedan quedar desincronizados del libro de stock.
func (r *StatsRepo) DashboardCounts(ctx context.Context, lowStockThreshold int64) (*repository.DashboardCounts, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM parts)                          AS total_parts,
	    (SELECT COUNT(*) FROM parts WHERE quantity < $1)      AS low_stock_parts,
	    (SELECT COUNT(*) FROM vehicles)                       AS total_vehicles,
	    (SELECT COUNT(*) FROM work_orders WHERE status <> $2) AS open_work_orders`

	var c repository.DashboardCounts
	err := r.pool.QueryRow(ctx, query, lowStockThreshold, string(entity.StatusCompleted)).Scan(
		&c.TotalParts, &c.LowStockParts, &c.TotalVehicles, &c.OpenWorkOrders,
	)
	if err != nil {
		return nil, fmt.Errorf("stats.DashboardCounts: %w", err)
	}
	return &c, nil
}
