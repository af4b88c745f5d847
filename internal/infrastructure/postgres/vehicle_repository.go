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

var _ repository.VehicleRepository = (*VehicleRepo)(nil)

// VehicleRepo implementación de VehicleRepository sobre PostgreSQL.
type VehicleRepo struct {
	q Querier
}

// NewVehicleRepository construye el adaptador de vehículos. Pasar pool o tx (Querier).
func NewVehicleRepository(q Querier) *VehicleRepo {
	return &VehicleRepo{q: q}
}

// Create persiste un vehículo nuevo; colisión de VIN se reporta como domain.ErrDuplicate.
func (r *VehicleRepo) Create(ctx context.Context, vehicle *entity.Vehicle) error {
	query := `
		INSERT INTO vehicles (vin, name, make, model, year, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		vehicle.VIN, vehicle.Name, vehicle.Make, vehicle.Model, vehicle.Year,
		vehicle.CreatedAt, vehicle.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("vehículo con VIN %s ya existe: %w", vehicle.VIN, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

// GetByVIN obtiene un vehículo por VIN. Devuelve (nil, nil) si no existe.
func (r *VehicleRepo) GetByVIN(ctx context.Context, vin string) (*entity.Vehicle, error) {
	query := `
		SELECT vin, name, make, model, year, created_at, updated_at
		FROM vehicles WHERE vin = $1`
	var v entity.Vehicle
	err := r.q.QueryRow(ctx, query, vin).Scan(
		&v.VIN, &v.Name, &v.Make, &v.Model, &v.Year, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return &v, nil
}

// List devuelve todos los vehículos en orden estable de VIN.
func (r *VehicleRepo) List(ctx context.Context) ([]*entity.Vehicle, error) {
	query := `
		SELECT vin, name, make, model, year, created_at, updated_at
		FROM vehicles ORDER BY vin`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vehicle
	for rows.Next() {
		var v entity.Vehicle
		if err := rows.Scan(&v.VIN, &v.Name, &v.Make, &v.Model, &v.Year, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
