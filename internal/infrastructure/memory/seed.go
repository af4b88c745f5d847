package memory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/taller-flota/internal/domain/entity"
)

// Seed carga los datos de demostración del modo memory: un inventario mínimo,
// dos ubicaciones, un bus y el usuario admin/admin. Pensado para desarrollo y
// demos, nunca para producción.
func Seed(store *Store) error {
	now := time.Now()

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed: hash admin: %w", err)
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	parts := []*entity.Part{
		{
			PartNumber: "OF-1022",
			Name:       "Oil Filter",
			Supplier:   "Supplier A",
			Quantity:   25,
			Price:      decimal.RequireFromString("15.50"),
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		{
			PartNumber: "BP-4510",
			Name:       "Brake Pad Set",
			Supplier:   "Supplier B",
			Quantity:   8,
			Price:      decimal.RequireFromString("75.00"),
			CreatedAt:  now,
			UpdatedAt:  now,
		},
	}
	for _, p := range parts {
		store.parts[p.PartNumber] = p
		store.partOrder = append(store.partOrder, p.PartNumber)
	}

	store.locations = []*entity.Location{
		{ID: 1, Name: "Main Warehouse"},
		{ID: 2, Name: "Garage A"},
	}

	bus := &entity.Vehicle{
		VIN:       "VIN101ABC",
		Name:      "Bus-101",
		Make:      "Mercedes-Benz",
		Model:     "Tourismo",
		Year:      2021,
		CreatedAt: now,
		UpdatedAt: now,
	}
	store.vehicles[bus.VIN] = bus
	store.vehicleOrder = append(store.vehicleOrder, bus.VIN)

	store.users["admin"] = &entity.User{
		ID:           uuid.New().String(),
		Username:     "admin",
		Email:        "admin@example.com",
		FullName:     "Admin User",
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	return nil
}
