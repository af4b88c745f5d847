package inventory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/taller-flota/internal/application/inventory"
	"github.com/tu-usuario/taller-flota/internal/domain"
	"github.com/tu-usuario/taller-flota/internal/domain/entity"
	"github.com/tu-usuario/taller-flota/internal/domain/repository"
	"github.com/tu-usuario/taller-flota/internal/infrastructure/memory"
)

// newLedger arma un libro de stock sobre un store en memoria con las partes dadas.
func newLedger(t *testing.T, stock map[string]int64) (*inventory.Ledger, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	partRepo := memory.NewPartRepository(store)
	for pn, qty := range stock {
		require.NoError(t, partRepo.Create(context.Background(), &entity.Part{
			PartNumber: pn,
			Name:       "Parte " + pn,
			Quantity:   qty,
		}))
	}
	return inventory.NewLedger(memory.NewTxRunner(store)), store
}

func quantityOf(t *testing.T, store *memory.Store, partNumber string) int64 {
	t.Helper()
	p, err := memory.NewPartRepository(store).GetByNumber(context.Background(), partNumber)
	require.NoError(t, err)
	require.NotNil(t, p, "la parte %s debe existir", partNumber)
	return p.Quantity
}

func TestLedger_Consume_DescuentaLote(t *testing.T) {
	ledger, store := newLedger(t, map[string]int64{"OF-1022": 25, "BP-4510": 8})

	err := ledger.Consume(context.Background(), []inventory.Item{
		{PartNumber: "OF-1022", Quantity: 3},
		{PartNumber: "BP-4510", Quantity: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(22), quantityOf(t, store, "OF-1022"))
	assert.Equal(t, int64(6), quantityOf(t, store, "BP-4510"))
}

func TestLedger_Consume_HastaCero(t *testing.T) {
	ledger, store := newLedger(t, map[string]int64{"OF-1022": 5})

	// Consumir exactamente el stock disponible es legal; el piso es cero.
	err := ledger.Consume(context.Background(), []inventory.Item{
		{PartNumber: "OF-1022", Quantity: 5},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), quantityOf(t, store, "OF-1022"))

	// Una unidad más ya no alcanza.
	err = ledger.Consume(context.Background(), []inventory.Item{
		{PartNumber: "OF-1022", Quantity: 1},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// Lote todo-o-nada: si una sola línea no alcanza, ninguna cantidad cambia,
// aunque las otras líneas sí alcanzaran.
func TestLedger_Consume_TodoONada(t *testing.T) {
	ledger, store := newLedger(t, map[string]int64{"OF-1022": 25, "BP-4510": 8})

	err := ledger.Consume(context.Background(), []inventory.Item{
		{PartNumber: "OF-1022", Quantity: 3},
		{PartNumber: "BP-4510", Quantity: 9}, // solo hay 8
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(25), quantityOf(t, store, "OF-1022"), "el lote fallido no debe tocar ninguna parte")
	assert.Equal(t, int64(8), quantityOf(t, store, "BP-4510"))
}

// El error de stock insuficiente nombra la parte exacta y las cantidades.
func TestLedger_Consume_ErrorNombraLaParte(t *testing.T) {
	ledger, _ := newLedger(t, map[string]int64{"BP-4510": 8})

	err := ledger.Consume(context.Background(), []inventory.Item{
		{PartNumber: "BP-4510", Quantity: 12},
	})
	require.Error(t, err)

	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "BP-4510", insufficient.PartNumber)
	assert.Equal(t, int64(12), insufficient.Requested)
	assert.Equal(t, int64(8), insufficient.Available)
	assert.Contains(t, err.Error(), "BP-4510")
}

func TestLedger_Consume_ParteInexistente(t *testing.T) {
	ledger, store := newLedger(t, map[string]int64{"OF-1022": 25})

	err := ledger.Consume(context.Background(), []inventory.Item{
		{PartNumber: "OF-1022", Quantity: 1},
		{PartNumber: "NO-EXISTE", Quantity: 1},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var notFound *domain.PartNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "NO-EXISTE", notFound.PartNumber)

	assert.Equal(t, int64(25), quantityOf(t, store, "OF-1022"), "el lote fallido no debe descontar nada")
}

func TestLedger_Consume_ValidacionDeLote(t *testing.T) {
	ledger, store := newLedger(t, map[string]int64{"OF-1022": 25})

	cases := []struct {
		name  string
		items []inventory.Item
	}{
		{"cantidad cero", []inventory.Item{{PartNumber: "OF-1022", Quantity: 0}}},
		{"cantidad negativa", []inventory.Item{{PartNumber: "OF-1022", Quantity: -3}}},
		{"part_number vacío", []inventory.Item{{PartNumber: "", Quantity: 1}}},
		{"parte repetida en el lote", []inventory.Item{
			{PartNumber: "OF-1022", Quantity: 1},
			{PartNumber: "OF-1022", Quantity: 2},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ledger.Consume(context.Background(), tc.items)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Equal(t, int64(25), quantityOf(t, store, "OF-1022"))
		})
	}
}

func TestLedger_Consume_LoteVacio(t *testing.T) {
	ledger, _ := newLedger(t, nil)
	assert.NoError(t, ledger.Consume(context.Background(), nil))
	assert.NoError(t, ledger.Consume(context.Background(), []inventory.Item{}))
}

// Demanda concurrente sobre la misma parte: con stock para K lotes y N > K
// intentos simultáneos, exactamente K ganan y el resto recibe stock insuficiente.
// El stock final nunca baja de cero.
func TestLedger_Consume_ConcurrenciaSobredemanda(t *testing.T) {
	const (
		stock    = 5
		attempts = 20
	)
	ledger, store := newLedger(t, map[string]int64{"BP-4510": stock})

	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = ledger.Consume(context.Background(), []inventory.Item{
				{PartNumber: "BP-4510", Quantity: 1},
			})
		}(i)
	}
	wg.Wait()

	var wins, losses int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		default:
			require.ErrorIs(t, err, domain.ErrInsufficientStock)
			losses++
		}
	}
	assert.Equal(t, stock, wins, "deben ganar exactamente tantos lotes como stock había")
	assert.Equal(t, attempts-stock, losses)
	assert.Equal(t, int64(0), quantityOf(t, store, "BP-4510"))
}

// Lotes concurrentes que tocan las mismas dos partes en distinto orden: la
// serialización del runner garantiza que cada lote ve un estado consistente.
func TestLedger_Consume_LotesSolapadosConcurrentes(t *testing.T) {
	const rounds = 50
	ledger, store := newLedger(t, map[string]int64{"OF-1022": rounds, "BP-4510": rounds})

	var wg sync.WaitGroup
	for i := 0; i < rounds; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			items := []inventory.Item{
				{PartNumber: "OF-1022", Quantity: 1},
				{PartNumber: "BP-4510", Quantity: 1},
			}
			if i%2 == 1 {
				items[0], items[1] = items[1], items[0]
			}
			if err := ledger.Consume(context.Background(), items); err != nil {
				t.Errorf("lote %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(0), quantityOf(t, store, "OF-1022"))
	assert.Equal(t, int64(0), quantityOf(t, store, "BP-4510"))
}

func TestLedger_ConsumeInTx_SeAcoplaAOtraEscritura(t *testing.T) {
	ledger, store := newLedger(t, map[string]int64{"OF-1022": 10})
	runner := memory.NewTxRunner(store)

	// El consumo pasa pero la escritura acompañante falla: la transacción
	// completa se revierte, incluido el descuento ya aplicado.
	err := runner.Run(context.Background(), func(
		partRepo repository.PartRepository,
		_ repository.WorkOrderRepository,
	) error {
		if err := ledger.ConsumeInTx(context.Background(), partRepo, []inventory.Item{
			{PartNumber: "OF-1022", Quantity: 4},
		}); err != nil {
			return err
		}
		return fmt.Errorf("fallo simulado después del consumo")
	})
	require.Error(t, err)
	assert.Equal(t, int64(10), quantityOf(t, store, "OF-1022"), "el rollback debe restaurar el stock")
}
