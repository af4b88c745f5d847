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

var _ repository.PartRepository = (*PartRepo)(nil)

// PartRepo implementación de PartRepository sobre PostgreSQL (usable con pool o tx).
type PartRepo struct {
	q Querier
}

// NewPartRepository construye el adaptador de partes. Pasar pool o tx (Querier).
func NewPartRepository(q Querier) *PartRepo {
	return &PartRepo{q: q}
}

// Create persiste una parte nueva. La unicidad de part_number la garantiza la PK;
// una colisión se reporta como domain.ErrDuplicate.
func (r *PartRepo) Create(ctx context.Context, part *entity.Part) error {
	query := `
		INSERT INTO parts (part_number, name, supplier, quantity, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		part.PartNumber, part.Name, part.Supplier, part.Quantity, part.Price,
		part.CreatedAt, part.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("parte %s ya existe: %w", part.PartNumber, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert part: %w", err)
	}
	return nil
}

// GetByNumber obtiene una parte por su part_number. Devuelve (nil, nil) si no existe.
func (r *PartRepo) GetByNumber(ctx context.Context, partNumber string) (*entity.Part, error) {
	return r.get(ctx, partNumber, false)
}

// GetByNumberForUpdate obtiene la parte y bloquea la fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción; es el bloqueo por parte que
// serializa lotes de consumo solapados.
func (r *PartRepo) GetByNumberForUpdate(ctx context.Context, partNumber string) (*entity.Part, error) {
	return r.get(ctx, partNumber, true)
}

func (r *PartRepo) get(ctx context.Context, partNumber string, forUpdate bool) (*entity.Part, error) {
	query := `
		SELECT part_number, name, supplier, quantity, price, created_at, updated_at
		FROM parts WHERE part_number = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var p entity.Part
	err := r.q.QueryRow(ctx, query, partNumber).Scan(
		&p.PartNumber, &p.Name, &p.Supplier, &p.Quantity, &p.Price, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part: %w", err)
	}
	return &p, nil
}

// UpdateQuantity fija la cantidad en mano de una parte. El CHECK (quantity >= 0)
// del esquema es la última línea de defensa del invariante; la validación de
// suficiencia ocurre antes, bajo el bloqueo de fila.
func (r *PartRepo) UpdateQuantity(ctx context.Context, partNumber string, quantity int64) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE parts SET quantity = $2, updated_at = now() WHERE part_number = $1`,
		partNumber, quantity,
	)
	if err != nil {
		return fmt.Errorf("update part quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return &domain.PartNotFoundError{PartNumber: partNumber}
	}
	return nil
}

// List devuelve todas las partes en orden estable de part_number.
func (r *PartRepo) List(ctx context.Context) ([]*entity.Part, error) {
	query := `
		SELECT part_number, name, supplier, quantity, price, created_at, updated_at
		FROM parts ORDER BY part_number`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Part
	for rows.Next() {
		var p entity.Part
		if err := rows.Scan(&p.PartNumber, &p.Name, &p.Supplier, &p.Quantity, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan part: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
