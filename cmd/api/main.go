package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	appanalytics "github.com/tu-usuario/taller-flota/internal/application/analytics"
	"github.com/tu-usuario/taller-flota/internal/application/auth"
	"github.com/tu-usuario/taller-flota/internal/application/inventory"
	"github.com/tu-usuario/taller-flota/internal/application/usecase"
	"github.com/tu-usuario/taller-flota/internal/application/workorder"
	"github.com/tu-usuario/taller-flota/internal/domain/repository"
	"github.com/tu-usuario/taller-flota/internal/infrastructure/memory"
	"github.com/tu-usuario/taller-flota/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/taller-flota/internal/interfaces/http"
	"github.com/tu-usuario/taller-flota/pkg/config"
	"github.com/tu-usuario/taller-flota/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	// Los precios se serializan como número JSON, no como string.
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()

	var (
		partRepo      repository.PartRepository
		vehicleRepo   repository.VehicleRepository
		locationRepo  repository.LocationRepository
		workOrderRepo repository.WorkOrderRepository
		userRepo      repository.UserRepository
		statsRepo     repository.StatsRepository
		txRunner      inventory.TxRunner
	)

	switch cfg.DB.Driver {
	case "memory":
		// Backend en memoria para demo y desarrollo, con datos sembrados.
		store := memory.NewStore()
		if err := memory.Seed(store); err != nil {
			log.Fatal().Err(err).Msg("sembrar datos iniciales")
		}
		partRepo = memory.NewPartRepository(store)
		vehicleRepo = memory.NewVehicleRepository(store)
		locationRepo = memory.NewLocationRepository(store)
		workOrderRepo = memory.NewWorkOrderRepository(store)
		userRepo = memory.NewUserRepository(store)
		statsRepo = memory.NewStatsRepository(store)
		txRunner = memory.NewTxRunner(store)
		log.Info().Msg("backend en memoria sembrado")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()

		partRepo = postgres.NewPartRepository(pool)
		vehicleRepo = postgres.NewVehicleRepository(pool)
		locationRepo = postgres.NewLocationRepository(pool)
		workOrderRepo = postgres.NewWorkOrderRepository(pool)
		userRepo = postgres.NewUserRepository(pool)
		statsRepo = postgres.NewStatsRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
	}

	ledger := inventory.NewLedger(txRunner)
	partUC := usecase.NewPartUseCase(partRepo)
	vehicleUC := usecase.NewVehicleUseCase(vehicleRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo)
	workOrderUC := workorder.NewUseCase(txRunner, ledger, vehicleRepo, workOrderRepo)
	dashboardUC := appanalytics.NewDashboardUseCase(statsRepo, cfg.Inventory.LowStockThreshold)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Taller Flota API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		PartUC:      partUC,
		VehicleUC:   vehicleUC,
		LocationUC:  locationUC,
		WorkOrderUC: workOrderUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
