package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/taller-flota/internal/domain"
	"github.com/tu-usuario/taller-flota/internal/domain/entity"
	"github.com/tu-usuario/taller-flota/internal/domain/repository"
)

func TestTxRunner_CommitDejaLosCambios(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, NewPartRepository(store).Create(ctx, &entity.Part{PartNumber: "OF-1022", Quantity: 10}))

	err := NewTxRunner(store).Run(ctx, func(
		partRepo repository.PartRepository,
		workOrderRepo repository.WorkOrderRepository,
	) error {
		if err := partRepo.UpdateQuantity(ctx, "OF-1022", 7); err != nil {
			return err
		}
		return workOrderRepo.Create(ctx, &entity.WorkOrder{
			ID: "wo-1", VehicleVIN: "VIN101ABC", Description: "x", Status: entity.StatusPending,
		})
	})
	require.NoError(t, err)

	p, err := NewPartRepository(store).GetByNumber(ctx, "OF-1022")
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.Quantity)

	o, err := NewWorkOrderRepository(store).GetByID(ctx, "wo-1")
	require.NoError(t, err)
	require.NotNil(t, o)
}

// Un error del callback revierte todo lo mutado dentro de la transacción,
// cantidades y órdenes por igual.
func TestTxRunner_ErrorRestauraElSnapshot(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, NewPartRepository(store).Create(ctx, &entity.Part{PartNumber: "OF-1022", Quantity: 10}))

	boom := errors.New("fallo simulado")
	err := NewTxRunner(store).Run(ctx, func(
		partRepo repository.PartRepository,
		workOrderRepo repository.WorkOrderRepository,
	) error {
		if err := partRepo.UpdateQuantity(ctx, "OF-1022", 1); err != nil {
			return err
		}
		if err := workOrderRepo.Create(ctx, &entity.WorkOrder{ID: "wo-x", Status: entity.StatusPending}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := NewPartRepository(store).GetByNumber(ctx, "OF-1022")
	require.NoError(t, err)
	assert.Equal(t, int64(10), p.Quantity, "la cantidad debe volver al valor previo")

	o, err := NewWorkOrderRepository(store).GetByID(ctx, "wo-x")
	require.NoError(t, err)
	assert.Nil(t, o, "la orden creada dentro de la transacción fallida no debe existir")
}

func TestTxRunner_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := NewTxRunner(NewStore()).Run(ctx, func(
		_ repository.PartRepository,
		_ repository.WorkOrderRepository,
	) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

// Los repositorios devuelven copias: mutar lo devuelto no toca el store.
func TestStore_LosRepositoriosDevuelvenCopias(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewPartRepository(store)
	require.NoError(t, repo.Create(ctx, &entity.Part{PartNumber: "OF-1022", Quantity: 10}))

	p, err := repo.GetByNumber(ctx, "OF-1022")
	require.NoError(t, err)
	p.Quantity = 999

	again, err := repo.GetByNumber(ctx, "OF-1022")
	require.NoError(t, err)
	assert.Equal(t, int64(10), again.Quantity)
}

func TestStore_DuplicadosYAusentes(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewPartRepository(store)
	require.NoError(t, repo.Create(ctx, &entity.Part{PartNumber: "OF-1022"}))

	err := repo.Create(ctx, &entity.Part{PartNumber: "OF-1022"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	missing, err := repo.GetByNumber(ctx, "no-existe")
	require.NoError(t, err)
	assert.Nil(t, missing, "ausencia se reporta como (nil, nil), no como error")
}

func TestSeed_CargaLosDatosDeDemo(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	require.NoError(t, Seed(store))

	parts, err := NewPartRepository(store).List(ctx)
	require.NoError(t, err)
	require.Len(t, parts, 2)
	assert.Equal(t, "OF-1022", parts[0].PartNumber)
	assert.Equal(t, int64(25), parts[0].Quantity)
	assert.Equal(t, "BP-4510", parts[1].PartNumber)
	assert.Equal(t, int64(8), parts[1].Quantity)

	vehicles, err := NewVehicleRepository(store).List(ctx)
	require.NoError(t, err)
	require.Len(t, vehicles, 1)
	assert.Equal(t, "VIN101ABC", vehicles[0].VIN)

	locations, err := NewLocationRepository(store).List(ctx)
	require.NoError(t, err)
	assert.Len(t, locations, 2)

	admin, err := NewUserRepository(store).GetByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, entity.RoleAdmin, admin.Role)
	assert.NotEmpty(t, admin.PasswordHash)
}
