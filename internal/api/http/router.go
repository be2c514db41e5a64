package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fleetflow/fleet-service/internal/api/http/handlers"
	"github.com/fleetflow/fleet-service/internal/auth"
	"github.com/fleetflow/fleet-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Accounts       *handlers.AccountsHandler
	Dashboards     *handlers.DashboardsHandler
	Vehicles       *handlers.VehiclesHandler
	Drivers        *handlers.DriversHandler
	Trips          *handlers.TripsHandler
	Expenses       *handlers.ExpensesHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")
	api.Post("/users", cfg.Accounts.Register)
	api.Post("/login", cfg.Accounts.Login)
	api.Post("/password/reset", cfg.Accounts.ResetPassword)
	api.Get("/users", cfg.Accounts.List)
	api.Put("/users/:id/role", cfg.Accounts.UpdateRole)
	api.Delete("/users/:id", cfg.Accounts.Delete)

	// Landing destinations accept either a bearer token or a bare email
	// query parameter, so the auth middleware runs in optional mode.
	app.Get("/home", cfg.AuthMiddleware.HandleOptional, cfg.Dashboards.Home)
	dashboards := app.Group("/dashboards", cfg.AuthMiddleware.HandleOptional)
	dashboards.Get("/operations", cfg.Dashboards.Operations)
	dashboards.Get("/safety", cfg.Dashboards.Safety)
	dashboards.Get("/finance", cfg.Dashboards.Finance)

	// Fleet reads are open to any authenticated principal; mutations are
	// tier-gated.
	fleet := api.Group("", cfg.AuthMiddleware.Handle)
	fleet.Get("/vehicles", cfg.Vehicles.List)
	fleet.Get("/vehicles/:id", cfg.Vehicles.Get)
	fleet.Get("/drivers", cfg.Drivers.List)
	fleet.Get("/drivers/:id", cfg.Drivers.Get)
	fleet.Get("/trips", cfg.Trips.List)
	fleet.Get("/trips/:id", cfg.Trips.Get)
	fleet.Get("/expenses/fuel", cfg.Expenses.ListFuelLogs)
	fleet.Get("/expenses/maintenance", cfg.Expenses.ListMaintenanceLogs)
	fleet.Get("/expenses/revenue", cfg.Expenses.ListTripRevenue)

	operations := fleet.Group("", auth.RequireTier(domain.TierOperations))
	operations.Post("/vehicles", cfg.Vehicles.Create)
	operations.Put("/vehicles/:id", cfg.Vehicles.Update)
	operations.Patch("/vehicles/:id/status", cfg.Vehicles.UpdateStatus)
	operations.Delete("/vehicles/:id", cfg.Vehicles.Delete)
	operations.Post("/drivers", cfg.Drivers.Create)
	operations.Put("/drivers/:id", cfg.Drivers.Update)
	operations.Patch("/drivers/:id/status", cfg.Drivers.UpdateStatus)
	operations.Delete("/drivers/:id", cfg.Drivers.Delete)
	operations.Post("/trips", cfg.Trips.Dispatch)
	operations.Post("/trips/:id/complete", cfg.Trips.Complete)
	operations.Post("/trips/:id/cancel", cfg.Trips.Cancel)

	finance := fleet.Group("", auth.RequireTier(domain.TierFinance))
	finance.Post("/expenses/fuel", cfg.Expenses.CreateFuelLog)
	finance.Post("/expenses/maintenance", cfg.Expenses.CreateMaintenanceLog)
	finance.Post("/expenses/revenue", cfg.Expenses.CreateTripRevenue)
}
