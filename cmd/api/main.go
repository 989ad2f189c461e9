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

	"github.com/beanshub/roastery-api/internal/application/analytics"
	"github.com/beanshub/roastery-api/internal/application/auth"
	"github.com/beanshub/roastery-api/internal/application/bootstrap"
	"github.com/beanshub/roastery-api/internal/application/inventory"
	"github.com/beanshub/roastery-api/internal/application/notification"
	"github.com/beanshub/roastery-api/internal/application/roasting"
	"github.com/beanshub/roastery-api/internal/application/sales"
	"github.com/beanshub/roastery-api/internal/infrastructure/docstore"
	infrapdf "github.com/beanshub/roastery-api/internal/infrastructure/pdf"
	httpRouter "github.com/beanshub/roastery-api/internal/interfaces/http"
	"github.com/beanshub/roastery-api/internal/service"
	"github.com/beanshub/roastery-api/internal/state"
	appsync "github.com/beanshub/roastery-api/internal/sync"
	"github.com/beanshub/roastery-api/pkg/config"
	"github.com/beanshub/roastery-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var store docstore.Store
	switch cfg.Store.Driver {
	case "postgres":
		pgStore, err := docstore.NewPostgresStore(ctx, cfg.DB.ConnectionString(), service.Orders(), log)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		store = pgStore
	default:
		store = docstore.NewMemoryStore(service.Orders())
	}
	defer store.Close()

	if cfg.Seed.Enabled {
		if err := bootstrap.NewSeeder(store, log).Run(ctx); err != nil {
			log.Fatal().Err(err).Msg("siembra inicial")
		}
	}

	services := service.New(store)
	stateStore := state.NewStore()

	syncer := appsync.NewSyncer(services, stateStore, log)
	if err := syncer.Start(); err != nil {
		log.Error().Err(err).Msg("sincronización parcial, el estado queda degradado")
	}
	defer syncer.Close()

	notificationUC := notification.NewUseCase(services, stateStore, log)
	authUC := auth.NewUseCase(services, stateStore, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	inventoryUC := inventory.NewUseCase(services, stateStore, notificationUC, log)
	roastingUC := roasting.NewUseCase(services, stateStore, notificationUC, log)
	salesUC := sales.NewUseCase(services, stateStore, notificationUC, log)
	analyticsUC := analytics.NewUseCase(stateStore)

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
		Title:    "BeansHub API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		InventoryUC:    inventoryUC,
		RoastingUC:     roastingUC,
		SalesUC:        salesUC,
		NotificationUC: notificationUC,
		AnalyticsUC:    analyticsUC,
		StateStore:     stateStore,
		ReportPDF:      infrapdf.NewSalesReportGenerator(),
		JWTSecret:      cfg.JWT.Secret,
		Log:            log,
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

	syncer.Close()
	log.Info().Msg("aplicación detenida")
}
