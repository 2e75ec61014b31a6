package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/freshdesk-bridge/internal/api/http/handlers"
	"github.com/spec-kit/freshdesk-bridge/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Intake         *handlers.IntakeHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1")
	api.Post("/forms/contact", cfg.Intake.Submit)

	api.Post("/auth/admin/login", cfg.Admin.Login)

	admin := api.Group("/admin", cfg.AuthMiddleware.Handle)
	admin.Get("/submissions", cfg.Admin.ListSubmissions)
}
