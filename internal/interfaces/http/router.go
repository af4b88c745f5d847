package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/taller-flota/internal/application/analytics"
	"github.com/tu-usuario/taller-flota/internal/application/auth"
	"github.com/tu-usuario/taller-flota/internal/application/usecase"
	"github.com/tu-usuario/taller-flota/internal/application/workorder"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	PartUC      *usecase.PartUseCase
	VehicleUC   *usecase.VehicleUseCase
	LocationUC  *usecase.LocationUseCase
	WorkOrderUC *workorder.UseCase
	DashboardUC *analytics.DashboardUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	// Token (público, form-encoded)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/token", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/users/me", authHandler.Me)

	// Parts (protegido)
	parts := protected.Group("/parts")
	partHandler := NewPartHandler(deps.PartUC)
	parts.Post("/", partHandler.Create)
	parts.Get("/", partHandler.List)

	// Vehicles (protegido)
	vehicles := protected.Group("/vehicles")
	vehicleHandler := NewVehicleHandler(deps.VehicleUC)
	vehicles.Post("/", vehicleHandler.Create)
	vehicles.Get("/", vehicleHandler.List)

	// Locations (protegido)
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Get("/", locationHandler.List)

	// Work orders (protegido)
	workOrders := protected.Group("/work-orders")
	workOrderHandler := NewWorkOrderHandler(deps.WorkOrderUC)
	workOrders.Post("/", workOrderHandler.Create)
	workOrders.Get("/", workOrderHandler.List)
	workOrders.Get("/:id", workOrderHandler.GetByID)
	workOrders.Put("/:id", workOrderHandler.UpdateStatus)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard-stats", dashboardHandler.Stats)
}
