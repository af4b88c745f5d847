package memory

import (
	"context"

	"github.com/tu-usuario/taller-flota/internal/application/inventory"
	"github.com/tu-usuario/taller-flota/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks bajo el lock exclusivo del store, con rollback por
// snapshot: si fn devuelve error se restaura el estado previo completo.
//
// El lock global serializa todas las transacciones; es el equivalente en
// memoria del aislamiento serializable y suficiente para el volumen de un solo
// taller. La implementación PostgreSQL usa bloqueos por fila en su lugar.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run toma el lock exclusivo, saca un snapshot y ejecuta fn con repos en modo
// transacción (sin locks propios). Error de fn => restore; éxito => los cambios quedan.
func (r *TxRunner) Run(ctx context.Context, fn func(
	partRepo repository.PartRepository,
	workOrderRepo repository.WorkOrderRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.takeSnapshot()
	partRepo := &PartRepo{store: s, inTx: true}
	workOrderRepo := &WorkOrderRepo{store: s, inTx: true}

	if err := fn(partRepo, workOrderRepo); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}
