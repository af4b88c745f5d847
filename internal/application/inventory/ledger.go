// Package inventory implementa el libro de stock: el único camino por el que
// cambia Part.Quantity. Sostiene el invariante de stock no negativo bajo acceso
// concurrente mediante consumos por lote, todo-o-nada, dentro de una transacción.
package inventory

import (
	"context"
	"fmt"
	"sort"

	"github.com/tu-usuario/taller-flota/internal/domain"
	"github.com/tu-usuario/taller-flota/internal/domain/repository"
)

// Item una línea de consumo dentro de un lote: parte y cantidad a descontar.
type Item struct {
	PartNumber string
	Quantity   int64
}

// Ledger libro de stock. Consume descuenta lotes de partes de forma atómica;
// dos lotes concurrentes que toquen las mismas partes se serializan vía los
// bloqueos de fila (SELECT FOR UPDATE) del repositorio.
type Ledger struct {
	txRunner TxRunner
}

// NewLedger construye el libro de stock.
func NewLedger(txRunner TxRunner) *Ledger {
	return &Ledger{txRunner: txRunner}
}

// Consume descuenta un lote de partes como unidad atómica independiente.
// Si cualquier línea falla la validación, ninguna cantidad cambia.
func (l *Ledger) Consume(ctx context.Context, items []Item) error {
	return l.txRunner.Run(ctx, func(
		partRepo repository.PartRepository,
		_ repository.WorkOrderRepository,
	) error {
		return l.ConsumeInTx(ctx, partRepo, items)
	})
}

// ConsumeInTx valida y descuenta un lote usando el repositorio de partes de la
// transacción del caller. Permite acoplar el consumo a otra escritura (p. ej. la
// creación de una orden de trabajo) en la misma unidad atómica.
//
// Dos fases: primero se bloquean todas las filas y se valida existencia,
// cantidad positiva, unicidad de parte en el lote y suficiencia; solo si todo el
// lote pasa se aplican los descuentos. Las filas se bloquean en orden de
// part_number para que dos lotes solapados no puedan interbloquearse.
func (l *Ledger) ConsumeInTx(ctx context.Context, partRepo repository.PartRepository, items []Item) error {
	if len(items) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		if it.PartNumber == "" {
			return fmt.Errorf("part_number vacío en el lote: %w", domain.ErrInvalidInput)
		}
		if it.Quantity <= 0 {
			return fmt.Errorf("cantidad inválida %d para la parte %s: %w", it.Quantity, it.PartNumber, domain.ErrInvalidInput)
		}
		if _, dup := seen[it.PartNumber]; dup {
			return fmt.Errorf("parte %s duplicada en el lote: %w", it.PartNumber, domain.ErrInvalidInput)
		}
		seen[it.PartNumber] = struct{}{}
	}

	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].PartNumber < sorted[j].PartNumber })

	// Fase 1: bloquear y validar todo el lote antes de tocar cantidades.
	newQuantities := make(map[string]int64, len(sorted))
	for _, it := range sorted {
		part, err := partRepo.GetByNumberForUpdate(ctx, it.PartNumber)
		if err != nil {
			return err
		}
		if part == nil {
			return &domain.PartNotFoundError{PartNumber: it.PartNumber}
		}
		if part.Quantity < it.Quantity {
			return &domain.InsufficientStockError{
				PartNumber: it.PartNumber,
				Requested:  it.Quantity,
				Available:  part.Quantity,
			}
		}
		newQuantities[it.PartNumber] = part.Quantity - it.Quantity
	}

	// Fase 2: aplicar los descuentos; cualquier error aborta la transacción completa.
	for _, it := range sorted {
		if err := partRepo.UpdateQuantity(ctx, it.PartNumber, newQuantities[it.PartNumber]); err != nil {
			return err
		}
	}
	return nil
}
