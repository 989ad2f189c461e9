package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/beanshub/roastery-api/internal/application/analytics"
	"github.com/beanshub/roastery-api/internal/application/auth"
	"github.com/beanshub/roastery-api/internal/application/inventory"
	"github.com/beanshub/roastery-api/internal/application/notification"
	"github.com/beanshub/roastery-api/internal/application/roasting"
	"github.com/beanshub/roastery-api/internal/application/sales"
	"github.com/beanshub/roastery-api/internal/domain/entity"
	"github.com/beanshub/roastery-api/internal/infrastructure/pdf"
	"github.com/beanshub/roastery-api/internal/state"
	"github.com/beanshub/roastery-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.UseCase
	InventoryUC    *inventory.UseCase
	RoastingUC     *roasting.UseCase
	SalesUC        *sales.UseCase
	NotificationUC *notification.UseCase
	AnalyticsUC    *analytics.UseCase
	StateStore     *state.Store
	ReportPDF      *pdf.SalesReportGenerator
	JWTSecret      string
	Log            *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	authGroup.Post("/logout", AuthMiddleware(deps.JWTSecret), authHandler.Logout)

	// Users (solo Admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.AuthUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Delete("/:id", userHandler.Delete)

	// Green beans (protegido)
	beans := protected.Group("/green-beans")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	beans.Get("/", inventoryHandler.List)
	beans.Get("/low-stock", inventoryHandler.LowStock)
	beans.Post("/", inventoryHandler.Create)
	beans.Put("/:id", inventoryHandler.Update)
	beans.Delete("/:id", inventoryHandler.Delete)

	// Roasting (protegido)
	roastingGroup := protected.Group("/roasting")
	roastingHandler := NewRoastingHandler(deps.RoastingUC)
	roastingGroup.Get("/profiles", roastingHandler.ListProfiles)
	roastingGroup.Post("/profiles", roastingHandler.CreateProfile)
	roastingGroup.Put("/profiles/:id", roastingHandler.UpdateProfile)
	roastingGroup.Delete("/profiles/:id", roastingHandler.DeleteProfile)
	roastingGroup.Get("/sessions", roastingHandler.ListSessions)
	roastingGroup.Post("/sessions", roastingHandler.CreateSession)

	// Sales (protegido)
	salesGroup := protected.Group("/sales")
	salesHandler := NewSalesHandler(deps.SalesUC)
	salesGroup.Get("/", salesHandler.List)
	salesGroup.Post("/", salesHandler.Create)

	// Notifications (protegido)
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC, deps.StateStore)
	notifications.Get("/", notificationHandler.List)
	notifications.Patch("/:id/read", notificationHandler.MarkRead)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.AnalyticsUC)
	dashboard.Get("/summary", dashboardHandler.Summary)

	// Estado sincronizado + stream de eventos (protegido)
	stateHandler := NewStateHandler(deps.StateStore)
	protected.Get("/state", stateHandler.Get)
	eventsHandler := NewEventsHandler(deps.StateStore, deps.Log)
	protected.Get("/events", eventsHandler.Stream)

	// Reportes (protegido)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.SalesUC, deps.ReportPDF)
	reports.Get("/sales", reportHandler.SalesReport)
}
