package workorder_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/taller-flota/internal/application/dto"
	"github.com/tu-usuario/taller-flota/internal/application/inventory"
	"github.com/tu-usuario/taller-flota/internal/application/workorder"
	"github.com/tu-usuario/taller-flota/internal/domain"
	"github.com/tu-usuario/taller-flota/internal/domain/entity"
	"github.com/tu-usuario/taller-flota/internal/infrastructure/memory"
)

type fixture struct {
	uc    *workorder.UseCase
	store *memory.Store
}

// newFixture arma el caso de uso completo sobre un store en memoria con un
// vehículo y el stock indicado.
func newFixture(t *testing.T, stock map[string]int64) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	partRepo := memory.NewPartRepository(store)
	for pn, qty := range stock {
		require.NoError(t, partRepo.Create(ctx, &entity.Part{
			PartNumber: pn,
			Name:       "Parte " + pn,
			Quantity:   qty,
		}))
	}

	vehicleRepo := memory.NewVehicleRepository(store)
	require.NoError(t, vehicleRepo.Create(ctx, &entity.Vehicle{
		VIN:   "VIN101ABC",
		Name:  "Bus-101",
		Make:  "Mercedes-Benz",
		Model: "Tourismo",
		Year:  2021,
	}))

	runner := memory.NewTxRunner(store)
	uc := workorder.NewUseCase(
		runner,
		inventory.NewLedger(runner),
		vehicleRepo,
		memory.NewWorkOrderRepository(store),
	)
	return &fixture{uc: uc, store: store}
}

func (f *fixture) quantityOf(t *testing.T, partNumber string) int64 {
	t.Helper()
	p, err := memory.NewPartRepository(f.store).GetByNumber(context.Background(), partNumber)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Quantity
}

func TestCreate_DescuentaStockYCreaEnPending(t *testing.T) {
	f := newFixture(t, map[string]int64{"OF-1022": 5})

	out, err := f.uc.Create(context.Background(), dto.CreateWorkOrderRequest{
		VehicleVIN:  "VIN101ABC",
		Description: "Cambio de aceite",
		ItemsUsed:   []dto.WorkOrderItemDTO{{PartNumber: "OF-1022", QuantityUsed: 3}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, out.ID)
	assert.Equal(t, "Pending", out.Status)
	assert.Equal(t, "VIN101ABC", out.VehicleVIN)
	require.Len(t, out.ItemsUsed, 1)
	assert.Equal(t, int64(3), out.ItemsUsed[0].QuantityUsed)

	assert.Equal(t, int64(2), f.quantityOf(t, "OF-1022"))
}

func TestCreate_SinItems(t *testing.T) {
	f := newFixture(t, nil)

	out, err := f.uc.Create(context.Background(), dto.CreateWorkOrderRequest{
		VehicleVIN:  "VIN101ABC",
		Description: "Inspección general",
	})
	require.NoError(t, err)
	assert.Equal(t, "Pending", out.Status)
	assert.Empty(t, out.ItemsUsed)
}

// Stock insuficiente: la orden no se crea y ninguna parte del lote cambia,
// tampoco las que sí alcanzaban.
func TestCreate_StockInsuficiente_NoCreaNiDescuenta(t *testing.T) {
	f := newFixture(t, map[string]int64{"OF-1022": 5, "BP-4510": 1})

	_, err := f.uc.Create(context.Background(), dto.CreateWorkOrderRequest{
		VehicleVIN:  "VIN101ABC",
		Description: "Frenos y aceite",
		ItemsUsed: []dto.WorkOrderItemDTO{
			{PartNumber: "OF-1022", QuantityUsed: 2},
			{PartNumber: "BP-4510", QuantityUsed: 2},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "BP-4510")

	assert.Equal(t, int64(5), f.quantityOf(t, "OF-1022"))
	assert.Equal(t, int64(1), f.quantityOf(t, "BP-4510"))

	orders, err := f.uc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders, "la orden rechazada no debe existir")
}

func TestCreate_VehiculoInexistente(t *testing.T) {
	f := newFixture(t, map[string]int64{"OF-1022": 5})

	_, err := f.uc.Create(context.Background(), dto.CreateWorkOrderRequest{
		VehicleVIN:  "VIN-FANTASMA",
		Description: "Cambio de aceite",
		ItemsUsed:   []dto.WorkOrderItemDTO{{PartNumber: "OF-1022", QuantityUsed: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, int64(5), f.quantityOf(t, "OF-1022"), "la validación del vehículo es previa al consumo")
}

func TestCreate_ParteInexistente(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.uc.Create(context.Background(), dto.CreateWorkOrderRequest{
		VehicleVIN:  "VIN101ABC",
		Description: "Reparación",
		ItemsUsed:   []dto.WorkOrderItemDTO{{PartNumber: "NO-EXISTE", QuantityUsed: 1}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var notFound *domain.PartNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "NO-EXISTE", notFound.PartNumber)
}

func TestCreate_ValidacionDeEntrada(t *testing.T) {
	f := newFixture(t, map[string]int64{"OF-1022": 5})

	cases := []struct {
		name string
		in   dto.CreateWorkOrderRequest
	}{
		{"descripción vacía", dto.CreateWorkOrderRequest{
			VehicleVIN: "VIN101ABC", Description: "   ",
		}},
		{"vin vacío", dto.CreateWorkOrderRequest{
			Description: "Reparación",
		}},
		{"cantidad cero", dto.CreateWorkOrderRequest{
			VehicleVIN: "VIN101ABC", Description: "Reparación",
			ItemsUsed: []dto.WorkOrderItemDTO{{PartNumber: "OF-1022", QuantityUsed: 0}},
		}},
		{"cantidad negativa", dto.CreateWorkOrderRequest{
			VehicleVIN: "VIN101ABC", Description: "Reparación",
			ItemsUsed: []dto.WorkOrderItemDTO{{PartNumber: "OF-1022", QuantityUsed: -1}},
		}},
		{"parte duplicada", dto.CreateWorkOrderRequest{
			VehicleVIN: "VIN101ABC", Description: "Reparación",
			ItemsUsed: []dto.WorkOrderItemDTO{
				{PartNumber: "OF-1022", QuantityUsed: 1},
				{PartNumber: "OF-1022", QuantityUsed: 2},
			},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Create(context.Background(), tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Equal(t, int64(5), f.quantityOf(t, "OF-1022"))
		})
	}
}

func TestUpdateStatus_CicloDeVidaCompleto(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	created, err := f.uc.Create(ctx, dto.CreateWorkOrderRequest{
		VehicleVIN: "VIN101ABC", Description: "Revisión",
	})
	require.NoError(t, err)

	out, err := f.uc.UpdateStatus(ctx, created.ID, "In Progress")
	require.NoError(t, err)
	assert.Equal(t, "In Progress", out.Status)

	out, err = f.uc.UpdateStatus(ctx, created.ID, "Completed")
	require.NoError(t, err)
	assert.Equal(t, "Completed", out.Status)

	// Completed es terminal.
	_, err = f.uc.UpdateStatus(ctx, created.ID, "Completed")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateStatus_TransicionesIlegales(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	created, err := f.uc.Create(ctx, dto.CreateWorkOrderRequest{
		VehicleVIN: "VIN101ABC", Description: "Revisión",
	})
	require.NoError(t, err)

	// Salto Pending -> Completed.
	_, err = f.uc.UpdateStatus(ctx, created.ID, "Completed")
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	// La transición fallida no debe haber cambiado nada.
	got, err := f.uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pending", got.Status)

	// Regresión In Progress -> Pending.
	_, err = f.uc.UpdateStatus(ctx, created.ID, "In Progress")
	require.NoError(t, err)
	_, err = f.uc.UpdateStatus(ctx, created.ID, "Pending")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateStatus_EstadoDesconocido(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	created, err := f.uc.Create(ctx, dto.CreateWorkOrderRequest{
		VehicleVIN: "VIN101ABC", Description: "Revisión",
	})
	require.NoError(t, err)

	_, err = f.uc.UpdateStatus(ctx, created.ID, "Cancelled")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "estado fuera del vocabulario es 400, no 409")
}

func TestUpdateStatus_OrdenInexistente(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.uc.UpdateStatus(context.Background(), "no-existe", "In Progress")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Dos avances concurrentes sobre la misma orden: exactamente uno gana y el otro
// recibe transición inválida, nunca un doble avance.
func TestUpdateStatus_ConcurrenciaMismoEstado(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	created, err := f.uc.Create(ctx, dto.CreateWorkOrderRequest{
		VehicleVIN: "VIN101ABC", Description: "Revisión",
	})
	require.NoError(t, err)

	const attempts = 10
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.UpdateStatus(ctx, created.ID, "In Progress")
		}(i)
	}
	wg.Wait()

	var wins int
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			require.ErrorIs(t, err, domain.ErrInvalidTransition)
		}
	}
	assert.Equal(t, 1, wins, "solo un avance Pending -> In Progress puede ganar")

	got, err := f.uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "In Progress", got.Status)
}

// Creaciones concurrentes compitiendo por el mismo stock: el total consumido
// nunca supera el stock inicial.
func TestCreate_ConcurrenciaPorElStock(t *testing.T) {
	const (
		stock    = 6
		attempts = 15
	)
	f := newFixture(t, map[string]int64{"BP-4510": stock})

	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.Create(context.Background(), dto.CreateWorkOrderRequest{
				VehicleVIN:  "VIN101ABC",
				Description: "Cambio de pastillas",
				ItemsUsed:   []dto.WorkOrderItemDTO{{PartNumber: "BP-4510", QuantityUsed: 2}},
			})
		}(i)
	}
	wg.Wait()

	var wins int
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			require.ErrorIs(t, err, domain.ErrInsufficientStock)
		}
	}
	assert.Equal(t, stock/2, wins)
	assert.Equal(t, int64(0), f.quantityOf(t, "BP-4510"))

	orders, err := f.uc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, orders, wins, "solo las órdenes que consumieron stock deben existir")
}

func TestGetByID_Inexistente(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.uc.GetByID(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestList_DevuelveTodasLasOrdenes(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	first, err := f.uc.Create(ctx, dto.CreateWorkOrderRequest{VehicleVIN: "VIN101ABC", Description: "Primera"})
	require.NoError(t, err)
	second, err := f.uc.Create(ctx, dto.CreateWorkOrderRequest{VehicleVIN: "VIN101ABC", Description: "Segunda"})
	require.NoError(t, err)

	orders, err := f.uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	ids := []string{orders[0].ID, orders[1].ID}
	assert.Contains(t, ids, first.ID)
	assert.Contains(t, ids, second.ID)
}
